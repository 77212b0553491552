package spectra

import "fmt"

// MaxNamedChannels is the design constant bounding how many channels get a
// speaker-position name (and how many are editable before ChanWarning
// fires). Channels beyond this are still decoded and playable, just
// unnamed and un-editable by channel-specific operations.
const MaxNamedChannels = 18

// Standard WAVEFORMATEXTENSIBLE speaker-position mask bits, in the order
// Microsoft's dwChannelMask enumerates them.
const (
	SpeakerFrontLeft uint32 = 1 << iota
	SpeakerFrontRight
	SpeakerFrontCenter
	SpeakerLowFrequency
	SpeakerBackLeft
	SpeakerBackRight
	SpeakerFrontLeftOfCenter
	SpeakerFrontRightOfCenter
	SpeakerBackCenter
	SpeakerSideLeft
	SpeakerSideRight
	SpeakerTopCenter
	SpeakerTopFrontLeft
	SpeakerTopFrontCenter
	SpeakerTopFrontRight
	SpeakerTopBackLeft
	SpeakerTopBackCenter
	SpeakerTopBackRight
)

var speakerNames = []struct {
	bit  uint32
	name string
}{
	{SpeakerFrontLeft, "Front Left"},
	{SpeakerFrontRight, "Front Right"},
	{SpeakerFrontCenter, "Front Center"},
	{SpeakerLowFrequency, "Low Frequency"},
	{SpeakerBackLeft, "Back Left"},
	{SpeakerBackRight, "Back Right"},
	{SpeakerFrontLeftOfCenter, "Front Left of Center"},
	{SpeakerFrontRightOfCenter, "Front Right of Center"},
	{SpeakerBackCenter, "Back Center"},
	{SpeakerSideLeft, "Side Left"},
	{SpeakerSideRight, "Side Right"},
	{SpeakerTopCenter, "Top Center"},
	{SpeakerTopFrontLeft, "Top Front Left"},
	{SpeakerTopFrontCenter, "Top Front Center"},
	{SpeakerTopFrontRight, "Top Front Right"},
	{SpeakerTopBackLeft, "Top Back Left"},
	{SpeakerTopBackCenter, "Top Back Center"},
	{SpeakerTopBackRight, "Top Back Right"},
}

// MonoChannelMask is the channel mask NewFile gives a freshly created
// mono waveform (front-center), per spec.md §4.1.
const MonoChannelMask = SpeakerFrontCenter

// ChannelName returns the speaker-position name of channel index (0-based)
// out of channelCount channels described by mask. It falls back to
// "Channel #n" (1-based) when mask has no bit set for this channel's
// position, when index is beyond MaxNamedChannels, or when mask is zero.
func ChannelName(mask uint32, index, channelCount int) string {
	if index < 0 || index >= channelCount || index >= MaxNamedChannels {
		return fmt.Sprintf("Channel #%d", index+1)
	}

	// Walk the set bits of mask in ascending order; the n-th set bit names
	// the n-th channel, matching how WAVEFORMATEXTENSIBLE's dwChannelMask
	// assigns channel order.
	seen := 0

	for _, sn := range speakerNames {
		if mask&sn.bit == 0 {
			continue
		}

		if seen == index {
			return sn.name
		}

		seen++
	}

	return fmt.Sprintf("Channel #%d", index+1)
}

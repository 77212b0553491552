package tests_test

import (
	"encoding/binary"
	"fmt"
	"os"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"

	"github.com/mycophonic/spectra/tests/testutils"
)

// TestCLIEditSaveAsRoundTrip drives the spectra binary directly: open a
// fixture WAVE file, apply a full-range multiply-by-zero edit, save to a
// new path, and verify the written PCM quantizes to silence — the same
// property TestScenarioMultiplyByZeroProducesSilence checks at the package
// level, exercised here black-box through the CLI surface spec.md §6
// describes an embedding shell driving.
func TestCLIEditSaveAsRoundTrip(t *testing.T) {
	t.Parallel()

	const frames = 2048

	testCase := testutils.Setup()
	testCase.Description = "edit --op apply:...,type=multiply,amount=0 --save-as"

	var inputPath, outputPath string

	testCase.Setup = func(data test.Data, helpers test.Helpers) {
		inputPath = buildWAV(t, 44100, 16, 1, frames, 0, false, func(i int) byte { return byte(i*181 + 3) })
		outputPath = data.Temp().Path("out.wav")

		helpers.T().Log("fixture: " + inputPath)
	}

	testCase.Command = func(_ test.Data, helpers test.Helpers) test.TestableCommand {
		return helpers.Command(
			"edit", inputPath,
			"--op", fmt.Sprintf("apply:from=0,to=%d,type=multiply,amount=0,smoothing=0", frames-1),
			"--save-as", outputPath,
		)
	}

	testCase.Expected = func(_ test.Data, _ test.Helpers) *test.Expected {
		return &test.Expected{
			ExitCode: expect.ExitCodeSuccess,
			Output:   verifySilentOutput(outputPath, frames),
		}
	}

	testCase.Run(t)
}

func verifySilentOutput(path string, frames int) test.Comparator {
	return func(_ string, t tig.T) {
		t.Helper()

		raw, err := os.ReadFile(path)
		if err != nil {
			t.Log("reading CLI output: " + err.Error())
			t.Fail()

			return
		}

		pcm := raw[len(raw)-frames*2:]

		for i := 0; i < len(pcm); i += 2 {
			v := int16(binary.LittleEndian.Uint16(pcm[i : i+2])) //nolint:gosec // CLI-owned output bytes.
			if v < -1 || v > 1 {
				t.Log(fmt.Sprintf("sample %d = %d, want within +/-1 LSB of zero", i/2, v))
				t.Fail()

				return
			}
		}
	}
}

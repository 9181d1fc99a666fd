package output

import (
	"io"
	"os"
	"strconv"

	"github.com/masmgr/rankcurve/internal/curve"
)

// Row statuses reported for short-circuited scores.
const (
	statusGated  = "gated"
	statusCutOff = "cutoff"
)

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// FormatNumber prints the shortest representation, so 87.5 stays "87.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func rowStatus(b curve.Breakdown) string {
	switch {
	case b.Gated:
		return statusGated
	case b.CutOff:
		return statusCutOff
	default:
		return ""
	}
}

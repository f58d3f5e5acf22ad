// Package export writes the final academy ranking as a portable CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

var header = []string{"academy_name", "raw_reputation_score", "reputation_score_100"}

// WriteRanking writes the ranked academies as UTF-8 CSV with a header
// row. Callers pass academies already sorted descending by final score;
// row order is preserved verbatim.
func WriteRanking(w io.Writer, academies []model.Academy) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range academies {
		record := []string{
			a.AcademyName,
			strconv.FormatFloat(a.RawReputationScore, 'f', -1, 64),
			strconv.FormatFloat(a.ReputationScore100, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", a.AcademyName, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteRankingFile writes the ranking to a file at path.
func WriteRankingFile(path string, academies []model.Academy) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteRanking(f, academies); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

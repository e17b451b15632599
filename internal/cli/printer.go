package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"go.llib.dev/seqgen/pkg/archive"
)

const (
	formatAuto = "auto"
	formatText = "text"
	formatJSON = "json"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes sequences and runs either as readable text or as JSON lines.
type printer struct {
	out    io.Writer
	format string
	n      int
}

func (p *printer) sequence(seq []string) error {
	p.n++
	if p.format == formatJSON {
		return json.NewEncoder(p.out).Encode(seq)
	}
	if _, err := fmt.Fprintf(p.out, "# %d\n", p.n); err != nil {
		return err
	}
	for _, line := range seq {
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.out)
	return err
}

type runDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Count     int       `json:"count"`
}

func (p *printer) run(run archive.Run) error {
	if p.format == formatJSON {
		return json.NewEncoder(p.out).Encode(runDTO{
			ID:        run.ID.String(),
			Name:      run.Name,
			CreatedAt: run.CreatedAt,
			Count:     run.Count,
		})
	}
	_, err := fmt.Fprintf(p.out, "%s\t%s\t%d\t%s\n",
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Count, run.Name)
	return err
}

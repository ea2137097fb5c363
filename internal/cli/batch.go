package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/meenmo/modates/daycount"
	"github.com/meenmo/modates/tenor"
	"github.com/meenmo/modates/utils"
	"github.com/meenmo/modates/yearfrac"
)

var errBatchFailed = errors.New("one or more batch tasks failed")

type batchTask struct {
	TaskID     string   `json:"task_id,omitempty"`
	Op         string   `json:"op"`
	Date       string   `json:"date,omitempty"`
	Dates      []string `json:"dates,omitempty"`
	Tenor      string   `json:"tenor,omitempty"`
	Forward    string   `json:"forward,omitempty"`
	Year       int      `json:"year,omitempty"`
	Convention string   `json:"convention,omitempty"`
	EndOfMonth *bool    `json:"end_of_month,omitempty"`
}

type batchResult struct {
	TaskID        string    `json:"task_id,omitempty"`
	Op            string    `json:"op,omitempty"`
	Date          string    `json:"date,omitempty"`
	Dates         []string  `json:"dates,omitempty"`
	Days          []int     `json:"days,omitempty"`
	YearFractions []float64 `json:"year_fractions,omitempty"`
	Spot          string    `json:"spot,omitempty"`
	Effective     string    `json:"effective,omitempty"`
	Maturity      string    `json:"maturity,omitempty"`
	Error         string    `json:"error,omitempty"`
}

func batchCmd(a *app) *cobra.Command {
	var inputPath string

	c := &cobra.Command{
		Use:   "batch",
		Short: "Run a JSON object or array of tasks from a file or stdin",
		Long: `Each task names an op (tenor, spot, adjust, holidays, daycount, yearfrac)
and its arguments. Results are written as JSON in the same shape as the input;
a failed task carries an error field and makes the command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := strings.TrimSpace(inputPath)
			in := cmd.InOrStdin()
			if path == "" {
				if f, ok := in.(*os.File); ok {
					if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
						return fmt.Errorf("batch: no input; use --input <path> or pipe JSON on stdin")
					}
				}
			}

			raw, err := readInput(path, in)
			if err != nil {
				return fmt.Errorf("batch: read input: %w", err)
			}
			tasks, isArray, err := parseTasks(raw)
			if err != nil {
				return fmt.Errorf("batch: parse JSON: %w", err)
			}

			failed := 0
			results := make([]batchResult, 0, len(tasks))
			for _, t := range tasks {
				res, err := a.run(t)
				if err != nil {
					failed++
					a.log.Warn().Str("task_id", t.TaskID).Str("op", t.Op).Err(err).Msg("task failed")
					res = batchResult{TaskID: t.TaskID, Op: t.Op, Error: err.Error()}
				}
				results = append(results, res)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if isArray {
				err = enc.Encode(results)
			} else {
				err = enc.Encode(results[0])
			}
			if err != nil {
				return err
			}
			a.log.Info().Int("tasks", len(tasks)).Int("failed", failed).Msg("batch done")

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errBatchFailed, failed, len(tasks))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input path (reads stdin if omitted)")
	return c
}

// run executes one task against the resolved conventions.
func (a *app) run(t batchTask) (batchResult, error) {
	res := batchResult{TaskID: t.TaskID, Op: t.Op}

	eom := a.conv.EndOfMonth
	if t.EndOfMonth != nil {
		eom = *t.EndOfMonth
	}

	switch strings.ToLower(strings.TrimSpace(t.Op)) {
	case "tenor":
		start, err := utils.DateParser(t.Date)
		if err != nil {
			return res, err
		}
		tn, err := tenor.Parse(t.Tenor)
		if err != nil {
			return res, err
		}
		res.Date = tn.AddToDate(start, a.conv.Adjuster, eom).String()

	case "spot":
		trade, err := utils.DateParser(t.Date)
		if err != nil {
			return res, err
		}
		length, err := tenor.Parse(t.Tenor)
		if err != nil {
			return res, err
		}
		var fwd tenor.Tenor
		if t.Forward != "" {
			if fwd, err = tenor.Parse(t.Forward); err != nil {
				return res, err
			}
		}
		spot, eff, mat := tenor.SpotMaturity(trade, a.conv.SpotLagDays, fwd, length, a.conv.Adjuster, eom)
		res.Spot, res.Effective, res.Maturity = spot.String(), eff.String(), mat.String()

	case "adjust":
		dates, err := taskDates(t)
		if err != nil {
			return res, err
		}
		for i, d := range dates {
			dates[i] = a.conv.Adjuster.Adjust(d)
		}
		res.Dates = utils.FormatDates(dates)

	case "holidays":
		if t.Year == 0 {
			return res, fmt.Errorf("holidays: year is required")
		}
		res.Dates = utils.FormatDates(a.conv.Calendar.HolidaysInYear(t.Year))

	case "daycount":
		start, ends, err := taskRange(t)
		if err != nil {
			return res, err
		}
		dc := a.conv.DayCount
		if t.Convention != "" {
			if dc, err = daycount.ParseConvention(t.Convention); err != nil {
				return res, err
			}
		}
		res.Days = dc.DayCountVector(start, ends)

	case "yearfrac":
		start, ends, err := taskRange(t)
		if err != nil {
			return res, err
		}
		yf := a.conv.YearFraction
		if t.Convention != "" {
			if yf, err = yearfrac.ForConvention(t.Convention); err != nil {
				return res, err
			}
		}
		res.YearFractions = yf.TimeFractionVector(start, ends)

	default:
		return res, fmt.Errorf("unknown op %q", t.Op)
	}
	return res, nil
}

// taskDates collects date and dates, in that order.
func taskDates(t batchTask) ([]civil.Date, error) {
	args := t.Dates
	if t.Date != "" {
		args = append([]string{t.Date}, t.Dates...)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: no dates", t.Op)
	}
	return parseDates(args)
}

// taskRange reads date as the start and dates as the ends.
func taskRange(t batchTask) (civil.Date, []civil.Date, error) {
	start, err := utils.DateParser(t.Date)
	if err != nil {
		return civil.Date{}, nil, err
	}
	if len(t.Dates) == 0 {
		return civil.Date{}, nil, fmt.Errorf("%s: no end dates", t.Op)
	}
	ends, err := parseDates(t.Dates)
	return start, ends, err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func parseTasks(raw []byte) ([]batchTask, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var tasks []batchTask
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, true, err
		}
		if len(tasks) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return tasks, true, nil
	}
	var task batchTask
	if err := json.Unmarshal(trimmed, &task); err != nil {
		return nil, false, err
	}
	return []batchTask{task}, false, nil
}

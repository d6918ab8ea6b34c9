package importer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Reason explains why a staged row was skipped.
type Reason string

// Row-local rejection reasons. A rejected row is skipped and the rest of the
// batch continues.
const (
	ReasonUnrecognizedDateFormat Reason = "unrecognized_date_format"
	ReasonInvalidAmount          Reason = "invalid_amount"
	ReasonMissingDescription     Reason = "missing_description"
	ReasonUnknown                Reason = "unknown"
)

// Rejection records one skipped row.
type Rejection struct {
	Reason Reason
	Detail string
	Row    int // 1-based index among staged rows
}

// Result summarizes a commit.
type Result struct {
	Records    []model.Expense
	Rejections []Rejection
	Imported   int
	Skipped    int
}

// Sink receives accepted records.
type Sink interface {
	AddOrReplace(model.Expense)
}

// CommitRequest carries the caller's choices for a commit.
type CommitRequest struct {
	// Progress, when set, is called after each row is processed.
	Progress func(done, total int)
	Category model.Category
	Mapping  Mapping
}

// Commit validates every staged row and forwards accepted records to sink.
// Each row is handled independently: a bad row is skipped with a reason and
// never stops the batch. The staged rows are released afterwards.
func (p *Pipeline) Commit(req CommitRequest, sink Sink) (Result, error) {
	if !p.staged() {
		return Result{}, ErrNoStagedImport
	}
	if !req.Category.Valid() {
		return Result{}, fmt.Errorf("%w: %q", model.ErrInvalidCategory, string(req.Category))
	}
	if err := p.Map(req.Mapping); err != nil {
		return Result{}, err
	}

	var res Result
	total := len(p.rows)
	for i, row := range p.rows {
		rec, rej := p.convertRow(row, req.Mapping, req.Category)
		if rej != nil {
			rej.Row = i + 1
			res.Skipped++
			res.Rejections = append(res.Rejections, *rej)
			slog.Debug("Skipped import row",
				"row", rej.Row,
				"reason", rej.Reason,
				"detail", rej.Detail)
		} else {
			sink.AddOrReplace(rec)
			res.Imported++
			res.Records = append(res.Records, rec)
		}
		if req.Progress != nil {
			req.Progress(i+1, total)
		}
	}

	slog.Info("Import committed",
		"imported", res.Imported,
		"skipped", res.Skipped,
		"category", req.Category)

	p.discard(StageCommitted)
	return res, nil
}

// convertRow turns one staged row into a record. Any panic is reported as an
// unknown rejection so a single row can never abort the batch.
func (p *Pipeline) convertRow(row []string, m Mapping, category model.Category) (rec model.Expense, rej *Rejection) {
	defer func() {
		if r := recover(); r != nil {
			rec = model.Expense{}
			rej = &Rejection{Reason: ReasonUnknown, Detail: fmt.Sprint(r)}
		}
	}()

	dateCell := stripQuotes(row[m.Date])
	descCell := stripQuotes(row[m.Description])
	amountCell := stripQuotes(row[m.Amount])

	date, ok := NormalizeDate(dateCell)
	if !ok {
		return model.Expense{}, &Rejection{Reason: ReasonUnrecognizedDateFormat, Detail: dateCell}
	}

	amount, err := ParseAmount(amountCell)
	if err != nil {
		return model.Expense{}, &Rejection{Reason: ReasonInvalidAmount, Detail: amountCell}
	}

	description := strings.TrimSpace(descCell)
	if description == "" {
		return model.Expense{}, &Rejection{Reason: ReasonMissingDescription}
	}

	return model.Expense{
		ID:          p.newID(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}, nil
}

func stripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

var (
	slashDate     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// NormalizeDate converts M/D/YY, M/D/YYYY or YYYY-MM-DD input to YYYY-MM-DD.
// Two-digit years are taken as 20YY. The result must be a real calendar date.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)

	var date string
	if m := slashDate.FindStringSubmatch(s); m != nil {
		month, day, year := m[1], m[2], m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		date = fmt.Sprintf("%s-%s-%s", year, padTwo(month), padTwo(day))
	} else if canonicalDate.MatchString(s) {
		date = s
	} else {
		return "", false
	}

	if !model.ValidDate(date) {
		return "", false
	}
	return date, true
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

var (
	amountNoise  = regexp.MustCompile(`[^0-9.\-]`)
	amountPrefix = regexp.MustCompile(`^-?\d*\.?\d+`)
)

// ParseAmount keeps only digits, '.' and '-', reads the longest number at the
// start of what remains and returns its absolute value. Anything after that
// number is ignored, so "45.00-" is 45.00 and "12.34.56" is 12.34. Zero and
// input without a leading number are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	num := amountPrefix.FindString(amountNoise.ReplaceAllString(s, ""))
	if num == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", model.ErrInvalidAmount, s)
	}
	if rest, neg := strings.CutPrefix(num, "-"); strings.HasPrefix(rest, ".") {
		num = "0" + rest
		if neg {
			num = "-" + num
		}
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", model.ErrInvalidAmount, s)
	}
	d = d.Abs()
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", model.ErrInvalidAmount, s)
	}
	return d, nil
}

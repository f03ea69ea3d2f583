package idl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

//DateList is a list of calendar dates read from text, one per line:
//
//	YYYY-MM-DD
//	YYYY-MM-DDThh:mm[:ss[.fff]]
//	YYYY-MM-DD hh:mm[:ss[.fff]]
//
//Years may be negative for BCE dates. Empty lines and lines starting with #
//are skipped, a trailing Z is ignored.
type DateList struct {
	rows    []dateRow
	hasTime bool
}

type dateRow struct {
	line                           int
	year, month, day, hour, minute int
	second                         float64
}

var dateRowRegexp = regexp.MustCompile(`^([+-]?\d+)-(\d{1,2})-(\d{1,2})(?:[T ](\d{1,2}):(\d{1,2})(?::(\d{1,2}(?:\.\d*)?))?)?Z?$`)

//Opens a date list file from disk and reads it completely.
//The file is decoded with dec, a nil dec assumes UTF8.
func OpenFile(filename string, dec Decoder) (*DateList, error) {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return OpenStream(f, dec)
}

//Reads a date list from any reader
func OpenStream(r io.Reader, dec Decoder) (*DateList, error) {
	if dec == nil {
		dec = new(UTF8Decoder)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err := dec.Decode(raw)
	if err != nil {
		return nil, err
	}

	list := new(DateList)
	scanner := bufio.NewScanner(strings.NewReader(normalizeText(data)))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row, timed, err := parseDateRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrSyntax, n, line)
		}
		row.line = n
		list.hasTime = list.hasTime || timed
		list.rows = append(list.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(list.rows) == 0 {
		return nil, ErrNoDates
	}
	return list, nil
}

func parseDateRow(line string) (dateRow, bool, error) {
	m := dateRowRegexp.FindStringSubmatch(line)
	if m == nil {
		return dateRow{}, false, ErrSyntax
	}
	row := dateRow{}
	var err error
	ints := []*int{&row.year, &row.month, &row.day, &row.hour, &row.minute}
	for i, p := range ints {
		if m[i+1] == "" {
			continue
		}
		if *p, err = strconv.Atoi(m[i+1]); err != nil {
			return dateRow{}, false, err
		}
	}
	if m[6] != "" {
		if row.second, err = strconv.ParseFloat(m[6], 64); err != nil {
			return dateRow{}, false, err
		}
	}
	return row, m[4] != "", nil
}

//Returns the number of dates in the list
func (l *DateList) NumRecords() int {
	return len(l.rows)
}

//Returns if at least one date has a time of day
func (l *DateList) HasTime() bool {
	return l.hasTime
}

//Returns the line number a record was read from
func (l *DateList) Line(rec int) int {
	return l.rows[rec].line
}

//Returns the date components as one dimensional Arrays
func (l *DateList) Columns() (year, month, day, hour, minute, second Array) {
	n := len(l.rows)
	cols := make([][]float64, 6)
	for i := range cols {
		cols[i] = make([]float64, n)
	}
	for i, r := range l.rows {
		cols[0][i] = float64(r.year)
		cols[1][i] = float64(r.month)
		cols[2][i] = float64(r.day)
		cols[3][i] = float64(r.hour)
		cols[4][i] = float64(r.minute)
		cols[5][i] = r.second
	}
	shape := []int{n}
	return Array{cols[0], shape}, Array{cols[1], shape}, Array{cols[2], shape},
		Array{cols[3], shape}, Array{cols[4], shape}, Array{cols[5], shape}
}

//Encodes all dates. The result is fractional if any date has a time of day,
//dates without one count as midnight in that case.
func (l *DateList) JulianDays(mode Mode) (Array, error) {
	year, month, day, hour, minute, second := l.Columns()
	if !l.hasTime {
		return Encode(year, month, day, mode)
	}
	return EncodeTime(year, month, day, hour, minute, second, mode)
}

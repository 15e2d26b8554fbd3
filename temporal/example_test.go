package temporal_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ardnew/iso8601/temporal"
)

func ExampleParse() {
	res, ok := temporal.Parse(temporal.TemporalDateString,
		"2021-04-01T12:30:15.25[u-ca=iso8601]")
	if !ok {
		return
	}

	for sym, text := range res.All() {
		fmt.Printf("%s=%s\n", sym, text)
	}
	// Output:
	// date_year=2021
	// date_month=04
	// date_day=01
	// time_hour=12
	// time_minute=30
	// time_second=15
	// time_fractional_part=25
	// calendar_name=iso8601
}

func ExampleMatches() {
	for _, input := range []string{
		"2021-04-01",
		"20210401",
		"2021-0401",
		"2021-04-01T23:59:60",
		"2021-04-01T23:59:61",
		"+002021-04-01",
		"+2021-04-01",
		"2021-04-01T12:00Z",
	} {
		fmt.Println(input, temporal.Matches(temporal.TemporalDateString, input))
	}
	// Output:
	// 2021-04-01 true
	// 20210401 true
	// 2021-0401 false
	// 2021-04-01T23:59:60 true
	// 2021-04-01T23:59:61 false
	// +002021-04-01 true
	// +2021-04-01 false
	// 2021-04-01T12:00Z false
}

func ExampleParseString() {
	_, err := temporal.ParseString(context.Background(),
		temporal.TemporalDateString, "2021-13-01")

	fmt.Println(err)
	// Output:
	// input does not match production
}

func ExampleParseResult_Format() {
	res, _ := temporal.Parse(temporal.TemporalDateString, "2021-04-01 09")

	_ = res.Format(context.Background(), os.Stdout)
	// Output:
	// date_year:  2021
	// date_month: 04
	// date_day:   01
	// time_hour:  09
}

func ExampleParseLines() {
	input := strings.NewReader("2021-04-01\nnot a date\n2021-04-01t0930\n")

	for line, err := range temporal.ParseLines(context.Background(), input,
		temporal.TemporalDateString) {
		if err != nil {
			fmt.Println(err)

			return
		}

		fmt.Println(line.Number, line.Matched())
	}
	// Output:
	// 1 true
	// 2 false
	// 3 true
}

func ExampleCompileFilter() {
	f, err := temporal.CompileFilter(`time_hour != "" && int(time_hour) < 12`)
	if err != nil {
		fmt.Println(err)

		return
	}

	for _, input := range []string{"2021-04-01T09", "2021-04-01T15", "2021-04-01"} {
		res, _ := temporal.Parse(temporal.TemporalDateString, input)
		ok, _ := f.Match(res)
		fmt.Println(input, ok)
	}
	// Output:
	// 2021-04-01T09 true
	// 2021-04-01T15 false
	// 2021-04-01 false
}

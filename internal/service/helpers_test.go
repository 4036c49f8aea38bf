package service_test

import (
	"strconv"
	"strings"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/service"
)

var header = strings.Join(service.RequiredColumns(), ";")

// table joins a header and rows into a semicolon delimited input.
func table(header string, rows ...string) string {
	return strings.Join(append([]string{header}, rows...), "\n") + "\n"
}

// scenarioTable is the two patient GTV example: A = (10, 8, 5), B = (20, 15, 10).
var scenarioTable = table(header,
	"A;10;8;5;;;;;;",
	"B;20;15;10;;;;;;",
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

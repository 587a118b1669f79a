package format_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benfrizsmalau/AplikasiPDRDMamra2025/internal/format"
)

func ExampleCurrency() {
	fmt.Println(format.Currency(decimal.NewFromInt(1500000)))
	fmt.Println(format.Currency(decimal.Zero))
	// Output:
	// Rp 1.500.000
	// Rp 0
}

func ExamplePrinted() {
	fmt.Println(format.Printed(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)))
	// Output: 5 Januari 2025
}

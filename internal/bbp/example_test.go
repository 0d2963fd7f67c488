package bbp

import (
	"context"
	"fmt"
)

// ExampleNewDefaultFactory demonstrates obtaining the registered engines and
// extracting the first hexadecimal digits of π after the point.
func ExampleNewDefaultFactory() {
	factory := NewDefaultFactory()
	fmt.Println(factory.List())

	ex, err := factory.Get("pool")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	digits, err := ex.Extract(context.Background(), nil, 0, 1, Options{})
	if err != nil {
		fmt.Printf("Extraction error: %v\n", err)
		return
	}

	fmt.Println(digits)
	// Output:
	// [grid pool]
	// 243F6A888
}

// ExamplePowerTable_ModPow16 demonstrates the fractional modular
// exponentiation engine.
func ExamplePowerTable_ModPow16() {
	tbl := NewPowerTable(100)
	fmt.Println(tbl.ModPow16(5, 7))
	fmt.Println(tbl.ModPow16(100, 999))
	// Output:
	// 4
	// 16
}

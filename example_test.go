package tclcodec_test

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/tclcodec"
)

func ExampleParseList() {
	words, err := tclcodec.ParseList(context.Background(), `alpha {beta gamma} "delta\tepsilon"`)
	if err != nil {
		panic(err)
	}
	for _, w := range words {
		fmt.Printf("%q\n", w)
	}
	// Output:
	// "alpha"
	// "beta gamma"
	// "delta\tepsilon"
}

func ExampleParseDict() {
	d, err := tclcodec.ParseDict(context.Background(), "name folk port 4273")
	if err != nil {
		panic(err)
	}
	port, _ := d.GetText("port")
	fmt.Println(d.Keys(), port)
	// Output: [name port] 4273
}

func ExampleDump() {
	text, err := tclcodec.Dump([]any{"a", "b c", "", "x}"})
	if err != nil {
		panic(err)
	}
	fmt.Println(text)
	// Output: {a {b c} {} x\}}
}

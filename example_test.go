package colkit_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/colkit"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel/discount"
	"github.com/hupe1980/colkit/kernel/featurehash"
)

func ptr[T any](v T) *T { return &v }

func ExampleEngine_Call() {
	ctx := context.Background()
	e, err := colkit.New()
	if err != nil {
		panic(err)
	}

	in := column.FromOptional("reward", []*float64{ptr(1.0), nil, ptr(2.0)})
	out, err := e.Call(ctx, discount.Name, in, discount.Params{Gamma: 0.5})
	if err != nil {
		panic(err)
	}

	for _, v := range out.(*column.Float64).Optional() {
		if v == nil {
			fmt.Println("null")
			continue
		}
		fmt.Println(*v)
	}
	// Output:
	// 1
	// null
	// 2.5
}

func ExampleEngine_CallEncoded() {
	ctx := context.Background()
	e, err := colkit.New()
	if err != nil {
		panic(err)
	}

	in := column.StringsFromOptional("token", []*string{ptr("a"), nil, ptr("a")})
	out, err := e.CallEncoded(ctx, featurehash.Name, in, []byte(`{"num_buckets": 10}`))
	if err != nil {
		panic(err)
	}

	fmt.Println(out.(*column.Uint64).Values())
	// Output:
	// [3 0 3]
}

func ExampleEngine_Kernels() {
	e, err := colkit.New()
	if err != nil {
		panic(err)
	}

	for _, doc := range e.Kernels() {
		fmt.Printf("%s (%s) -> %s\n", doc.Name, doc.Kind, doc.Output)
	}
	// Output:
	// discounted_cum_sum (vector) -> float64
	// feature_hasher (scalar) -> uint64
}

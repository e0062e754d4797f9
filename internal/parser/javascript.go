package parser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// jsDecoder evaluates a literal in a bare goja VM and serializes it with JSON.stringify.
// It accepts anything the website's browser would: single quotes, comments, template
// strings without substitutions, keys that look like values.
type jsDecoder struct {
	timeout time.Duration
}

func newJSDecoder(timeout time.Duration) jsDecoder {
	return jsDecoder{timeout: timeout}
}

func (jsDecoder) Source() Source { return SourceJavaScript }

func (d jsDecoder) ToJSON(literal string) ([]byte, error) {
	vm := goja.New()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	type result struct {
		val goja.Value
		err error
	}
	resultCh := make(chan result, 1)

	go func() {
		val, err := vm.RunString("JSON.stringify((\n" + literal + "\n))")
		resultCh <- result{val, err}
	}()

	select {
	case <-ctx.Done():
		vm.Interrupt("timeout")
		<-resultCh
		return nil, fmt.Errorf("evaluate literal: %w", ctx.Err())
	case res := <-resultCh:
		if res.err != nil {
			return nil, fmt.Errorf("evaluate literal: %w", res.err)
		}
		if res.val == nil || goja.IsUndefined(res.val) || goja.IsNull(res.val) {
			return nil, errors.New("evaluate literal: no value")
		}
		return []byte(res.val.String()), nil
	}
}

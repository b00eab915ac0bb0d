package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jcorbin/tapevm/internal/logio"
	"github.com/stretchr/testify/assert"
)

//go:generate go run scripts/gen_vm_expects.go -- vm_test.go vm_expects_test.go

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type vmTestCase struct {
	name    string
	src     string
	opts    []VMOption
	expect  []func(t *testing.T, vm *VM, res vmTestResult)
	timeout time.Duration
	wantErr error

	exclusive bool
}

type vmTestResult struct {
	consumed int
	count    int
	rec      *RecordingSink
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withProgram(src string) vmTestCase {
	vmt.src = src
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	vmt.opts = append(vmt.opts, opts...)
	return vmt
}

func (vmt vmTestCase) withTapeSize(size int) vmTestCase {
	vmt.opts = append(vmt.opts, WithTapeSize(size))
	return vmt
}

func (vmt vmTestCase) withStepLimit(limit uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithStepLimit(limit))
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		if assert.NotNil(t, res.rec, "expected a recording") {
			assert.Equal(t, output, res.rec.String(), "expected output")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectBytes(values ...byte) vmTestCase {
	if values == nil {
		values = []byte{}
	}
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		if assert.NotNil(t, res.rec, "expected a recording") {
			assert.Equal(t, values, res.rec.Bytes(), "expected output bytes")
			assert.Equal(t, append(values, Sentinel), res.rec.Buffer(), "expected sentinel terminated buffer")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectCount(n int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		assert.Equal(t, n, res.count, "expected counted output length")
		if res.rec != nil {
			assert.Equal(t, n+1, res.rec.Cap(), "expected recording capacity")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectConsumed(n int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		assert.Equal(t, n, res.consumed, "expected program bytes consumed")
	})
	return vmt
}

func (vmt vmTestCase) expectTape(addr int, values ...byte) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		cells := vm.Tape()
		if assert.True(t, addr+len(values) <= len(cells), "expected tape to hold @%v+%v", addr, len(values)) {
			assert.Equal(t, values, cells[addr:addr+len(values)], "expected tape values @%v", addr)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectPC(pc int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		assert.Equal(t, pc, vm.PC(), "expected data pointer")
	})
	return vmt
}

func (vmt vmTestCase) expectSteps(steps uint) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		assert.Equal(t, steps, vm.Steps(), "expected steps executed")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM, res vmTestResult) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	// trace every run, but only show it for failures
	var trace []string
	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Log(line)
			}
		}
	}()
	vm := vmt.buildVM(WithLogf(func(mess string, args ...interface{}) {
		const maxTrace = 4096
		if len(trace) < maxTrace {
			trace = append(trace, fmt.Sprintf(mess, args...))
		}
	}))

	vmt.runVMTest(context.Background(), t, vm)
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, vm)
		}
	}()

	res, err := vmt.runVM(ctx, vm)
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	if !t.Failed() {
		for _, expect := range vmt.expect {
			expect(t, vm, res)
		}
	}
}

// runVM does a single counting run, to observe what the two-pass Eval does
// not return, then the full Eval.
func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (res vmTestResult, err error) {
	prog, err := Compile(vmt.name, vmt.src)
	if err != nil {
		return res, err
	}

	var count CountingSink
	res.consumed, err = vm.Run(ctx, prog, &count)
	if err != nil {
		return res, err
	}
	res.count = count.Len()

	res.rec, err = vm.Eval(ctx, prog)
	return res, err
}

func (vmt vmTestCase) buildVM(opts ...VMOption) *VM {
	return New(VMOptions(vmt.opts...), VMOptions(opts...))
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

package main

import "github.com/jcorbin/tapevm/internal/tape"

// VMOption configures a VM when passed to New.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

var defaultOptions = VMOptions(
	withTapeSize(tape.DefaultSize),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type tapeSizeOption int
type stepLimitOption uint

func withTapeSize(size int) tapeSizeOption     { return tapeSizeOption(size) }
func withStepLimit(limit uint) stepLimitOption { return stepLimitOption(limit) }

func (size tapeSizeOption) apply(vm *VM) {
	vm.tapeSize = int(size)
}

func (lim stepLimitOption) apply(vm *VM) {
	vm.stepLimit = uint(lim)
}

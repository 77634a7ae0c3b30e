package tool

import (
	"errors"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Toolset bundles the dispatcher's collaborators behind the contract
// interface.
type Toolset struct {
	calculator contractx.Calculator
	outlets    contractx.OutletLookup
	completer  contractx.Completer
}

func NewToolset(calculator contractx.Calculator, outlets contractx.OutletLookup, completer contractx.Completer) (*Toolset, error) {
	if calculator == nil {
		return nil, errors.New("calculator is required")
	}
	if outlets == nil {
		return nil, errors.New("outlet lookup is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	return &Toolset{
		calculator: calculator,
		outlets:    outlets,
		completer:  completer,
	}, nil
}

func (t *Toolset) Calculator() contractx.Calculator {
	return t.calculator
}

func (t *Toolset) Outlets() contractx.OutletLookup {
	return t.outlets
}

func (t *Toolset) Completer() contractx.Completer {
	return t.completer
}

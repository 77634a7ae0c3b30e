package contract

import "context"

type Calculator interface {
	Calculate(data CalculationData) string
}

type OutletLookup interface {
	Lookup(ctx context.Context, query OutletQuery) string
}

type Completer interface {
	Complete(ctx context.Context, history []Turn, input string) (string, error)
}

type Toolset interface {
	Calculator() Calculator
	Outlets() OutletLookup
	Completer() Completer
}

type TranscriptArchive interface {
	Save(ctx context.Context, sessionID string, turns []Turn) error
	Load(ctx context.Context, sessionID string) ([]Turn, error)
}

package repetition

import (
	"testing"

	"mcsas/mcopt"
)

func TestEnsembleCompletedSkipsNilEntries(t *testing.T) {
	ens := &Ensemble{Runs: []*mcopt.Run{
		{Status: mcopt.Converged},
		nil,
		{Status: mcopt.MaxIterations},
	}}
	completed := ens.Completed()
	if len(completed) != 2 {
		t.Fatalf("Completed() length = %d, want 2", len(completed))
	}
	if completed[0].Status != mcopt.Converged || completed[1].Status != mcopt.MaxIterations {
		t.Errorf("Completed() = %+v, want the two non-nil runs in order", completed)
	}
}

func TestEnsembleCompletedOnAllNil(t *testing.T) {
	ens := &Ensemble{Runs: make([]*mcopt.Run, 3)}
	if got := ens.Completed(); len(got) != 0 {
		t.Errorf("Completed() = %v, want empty", got)
	}
}

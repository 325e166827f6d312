package core

import (
	"errors"
	"testing"
)

func TestConstructorsPreserveSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{NewInvalidSampleSizeError(0, 0), ErrInvalidSampleSize},
		{NewInvalidSampleSizeError(10, 5), ErrInvalidSampleSize},
		{NewSizeMismatchError(3, 4, 9), ErrSizeMismatch},
		{NewInvalidTrialCountError(0), ErrInvalidTrialCount},
		{NewInvalidConfidenceLevelError(1.5), ErrInvalidConfidenceLevel},
		{NewInsufficientSampleSizeError(1, 2), ErrInsufficientSampleSize},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("%v does not match its sentinel", tc.err)
		}
	}
}

func TestStatisticErrorKeepsOriginal(t *testing.T) {
	boom := errors.New("boom")
	err := NewStatisticError(12, boom)

	if !errors.Is(err, ErrStatisticFunction) {
		t.Error("statistic sentinel lost")
	}
	if !errors.Is(err, boom) {
		t.Error("original cause lost")
	}
}

func TestIsCallerError(t *testing.T) {
	if !IsCallerError(NewInvalidTrialCountError(-1)) {
		t.Error("trial count error not classified as caller error")
	}
	if IsCallerError(NewStatisticError(0, errors.New("x"))) {
		t.Error("statistic error classified as caller error")
	}
	if IsCallerError(errors.New("other")) {
		t.Error("unrelated error classified as caller error")
	}
	if !IsStatisticError(NewStatisticError(0, errors.New("x"))) {
		t.Error("IsStatisticError missed a statistic error")
	}
}

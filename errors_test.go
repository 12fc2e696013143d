/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"testing"
	"time"
)

func TestDrainErrorsStopsOnDone(t *testing.T) {
	errs := make(chan error, 1)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		drainErrors(errs, done)
		close(finished)
	}()

	errs <- errors.New("write failed")
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("drainErrors kept running after done was closed")
	}

	reportError(errs, errors.New("late"))
}

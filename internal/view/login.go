package view

import (
	"context"
	"fmt"
	"io"

	"github.com/esteban0203/FMA-2/internal/state"
)

type Login struct {
	auth *state.AuthState
}

func NewLogin(auth *state.AuthState) *Login {
	return &Login{auth: auth}
}

func (l *Login) GetStarted() {
	l.auth.Login()
}

func (l *Login) Render(_ context.Context, w io.Writer) error {
	fmt.Fprintln(w, "Welcome to")
	fmt.Fprintln(w, "Feed My ADHD!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Let's make food decisions easier together")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "> Get Started")
	return nil
}

package state

import "github.com/esteban0203/FMA-2/internal/app"

type AuthState struct {
	cell *Cell[bool]
}

func NewAuthState() *AuthState {
	return &AuthState{cell: NewCell(false)}
}

func (a *AuthState) IsAuthenticated() bool { return a.cell.Get() }

func (a *AuthState) Login() {
	if a.cell.Set(true) {
		app.Log.Debug("session started")
	}
}

func (a *AuthState) SignOut() {
	if a.cell.Set(false) {
		app.Log.Debug("session signed out")
	}
}

func (a *AuthState) Subscribe(fn func(authenticated bool)) func() {
	return a.cell.Subscribe(fn)
}

type NavVisibility struct {
	cell *Cell[bool]
}

func NewNavVisibility() *NavVisibility {
	return &NavVisibility{cell: NewCell(true)}
}

func (n *NavVisibility) Visible() bool { return n.cell.Get() }

func (n *NavVisibility) SetVisible(show bool) {
	if n.cell.Set(show) {
		app.Log.WithField("visible", show).Debug("tab bar visibility changed")
	}
}

func (n *NavVisibility) Subscribe(fn func(visible bool)) func() {
	return n.cell.Subscribe(fn)
}

type Store struct {
	Auth   *AuthState
	NavBar *NavVisibility
}

func NewStore() *Store {
	return &Store{
		Auth:   NewAuthState(),
		NavBar: NewNavVisibility(),
	}
}

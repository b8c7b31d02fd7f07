// Package swipe implementa la sesion de swipe del cliente como un reducer puro:
// cada transicion recibe el estado actual y una accion y devuelve un estado nuevo
// sin mutar el anterior.
package swipe

import (
	"errors"
	"fmt"
	"slices"
)

type ActionType int

const (
	// ActLike agrega la carta actual a los favoritos y avanza.
	ActLike ActionType = iota
	// ActPass avanza sin agregar.
	ActPass
)

func (a ActionType) String() string {
	switch a {
	case ActLike:
		return "like"
	case ActPass:
		return "pass"
	default:
		return fmt.Sprintf("ActionType(%d)", int(a))
	}
}

type Action struct {
	Type ActionType
}

func Like() Action { return Action{Type: ActLike} }
func Pass() Action { return Action{Type: ActPass} }

type Phase int

const (
	Browsing Phase = iota
	Complete
)

// State es inmutable desde el punto de vista del llamador.
type State struct {
	Deck  []string
	Index int
	Liked []string
	Phase Phase
}

var (
	ErrNotComplete = errors.New("swipe session not complete")
	ErrTooFewLiked = errors.New("not enough liked stocks")
)

// New arranca una sesion sobre los tickers del deck. Un deck vacio arranca completo.
func New(deck []string) State {
	s := State{Deck: slices.Clone(deck), Liked: []string{}}
	if len(s.Deck) == 0 {
		s.Phase = Complete
	}
	return s
}

// Reduce aplica la accion. En estado Complete cualquier accion es un no-op.
func Reduce(s State, a Action) State {
	if s.Phase == Complete || s.Index >= len(s.Deck) {
		s.Phase = Complete
		return s
	}

	switch a.Type {
	case ActLike:
		liked := make([]string, len(s.Liked), len(s.Liked)+1)
		copy(liked, s.Liked)
		s.Liked = append(liked, s.Deck[s.Index])
	case ActPass:
	default:
		return s
	}

	s.Index++
	if s.Index >= len(s.Deck) {
		s.Phase = Complete
	}
	return s
}

// Current devuelve el ticker en pantalla.
func (s State) Current() (string, bool) {
	if s.Phase == Complete || s.Index >= len(s.Deck) {
		return "", false
	}
	return s.Deck[s.Index], true
}

func (s State) Remaining() int {
	if s.Index >= len(s.Deck) {
		return 0
	}
	return len(s.Deck) - s.Index
}

// Submittable valida que la sesion pueda enviarse como portfolio.
// minLiked sale de la configuracion del cliente.
func Submittable(s State, minLiked int) error {
	if s.Phase != Complete {
		return ErrNotComplete
	}
	if len(s.Liked) < minLiked {
		return fmt.Errorf("%w: got %d, need %d", ErrTooFewLiked, len(s.Liked), minLiked)
	}
	return nil
}

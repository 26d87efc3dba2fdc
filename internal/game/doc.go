// Package game implements the Jacks-or-Better session state machine.
//
// A Session owns five table slots, the hold flags, the current GameState and
// the deck for the round in progress. Deal moves it through
// NewGame -> FirstDeal -> GameOver -> FirstDeal ...; ToggleHold only has an
// effect in FirstDeal.
//
// # Basic Usage
//
//	s := game.NewSession(rand.New(rand.NewSource(42)))
//	if err := s.Deal(); err != nil { // first deal
//	    return err
//	}
//	s.ToggleHold(0)
//	s.ToggleHold(3)
//	if err := s.Deal(); err != nil { // draw replacements
//	    return err
//	}
//	fmt.Println(s.HandCategory())
//
// # Deterministic Testing
//
// Each round acquires a fresh deck from the session's deck factory. The
// default factory seeds a poker.Deck from the session RNG, so a fixed seed
// reproduces every round. Tests can stack the deck instead:
//
//	s := game.NewSession(rng, game.WithDeckFactory(func() game.Deck {
//	    return myStackedDeck()
//	}))
//
// # Events
//
// RoundStartedEvent and DrawCompletedEvent are published synchronously on the
// session's EventBus, timestamped from its quartz clock.
package game

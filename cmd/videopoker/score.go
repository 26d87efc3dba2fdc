package main

import (
	"fmt"
	"strings"

	"github.com/lox/videopoker/internal/strategy"
	"github.com/lox/videopoker/internal/tui"
	"github.com/lox/videopoker/poker"
)

type ScoreCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. 'As Ks Qs Js Ts'"`
}

func (c *ScoreCmd) Run(globals *Globals) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	category, err := poker.ScoreHand(cards)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", tui.FormatCards(cards), tui.HandInfoStyle.Render(category.String()))
	return nil
}

type AdviseCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. 'Ah Kh Qh Jh 2c'"`
}

func (c *AdviseCmd) Run(globals *Globals) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	if len(cards) != poker.HandSize {
		return fmt.Errorf("%w: need %d cards, got %d", poker.ErrInvalidHand, poker.HandSize, len(cards))
	}

	var hand [poker.HandSize]poker.Card
	copy(hand[:], cards)
	decision := strategy.NewAdvisor(stderrLogger(globals)).Decide(hand)

	var held []poker.Card
	for i, hold := range decision.Holds {
		if hold {
			held = append(held, hand[i])
		}
	}
	kept := "nothing"
	if len(held) > 0 {
		kept = tui.FormatCards(held)
	}

	fmt.Printf("Hold %s  %s\n", kept, tui.AdviceStyle.Render("("+decision.Reasoning+")"))
	return nil
}

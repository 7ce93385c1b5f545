package bot

import (
	"fmt"

	"daifugo/internal/domain"
)

// Agent is an automated seat. It shields the room from strategy faults: a
// panic inside move search degrades to a pass and the round continues.
type Agent struct {
	Name  string
	brain Brain
}

// NewAgent returns an agent running the standard heuristic.
func NewAgent(name string) *Agent {
	return &Agent{Name: name, brain: &StandardBrain{}}
}

// NewAgentWithBrain returns an agent with a custom strategy.
func NewAgentWithBrain(name string, brain Brain) *Agent {
	return &Agent{Name: name, brain: brain}
}

// Move asks the agent for its play. The returned error reports a strategy
// fault; the move is then a safe pass.
func (a *Agent) Move(hand []domain.Card, field domain.Field) (mv Move, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mv = Move{Pass: true}
			err = fmt.Errorf("bot %s move search: %v", a.Name, rec)
		}
	}()

	mv, err = a.brain.ChooseMove(hand, field)
	if err != nil {
		return Move{Pass: true}, fmt.Errorf("bot %s move search: %w", a.Name, err)
	}
	return mv, nil
}

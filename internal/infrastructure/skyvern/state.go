package skyvern

import "fmt"

// taskState is the local view of a submitted task.
type taskState string

const (
	stateSubmitted taskState = "SUBMITTED"
	statePolling   taskState = "POLLING"
	stateCompleted taskState = "COMPLETED"
	stateFailed    taskState = "FAILED"
	stateTimedOut  taskState = "TIMED_OUT"
)

var transitions = map[taskState][]taskState{
	stateSubmitted: {statePolling},
	statePolling:   {statePolling, stateCompleted, stateFailed, stateTimedOut},
}

type taskMachine struct {
	state taskState
}

func newTaskMachine() *taskMachine {
	return &taskMachine{state: stateSubmitted}
}

func (m *taskMachine) to(next taskState) error {
	for _, allowed := range transitions[m.state] {
		if allowed == next {
			m.state = next
			return nil
		}
	}
	return fmt.Errorf("illegal task transition %s -> %s", m.state, next)
}

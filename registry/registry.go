package registry

import (
	"sync"

	"github.com/EidolonLabs/persona-launchpad/core"
)

var (
	agents    = make(map[string]*core.Agent)
	agentLock sync.RWMutex
)

// RegisterAgent stores the agent registration, replacing any prior entry
// with the same ID.
func RegisterAgent(a *core.Agent) {
	agentLock.Lock()
	defer agentLock.Unlock()
	agents[a.ID] = a
}

// GetAgent returns the registration for an agent ID, if any.
func GetAgent(id string) (*core.Agent, bool) {
	agentLock.RLock()
	defer agentLock.RUnlock()
	a, ok := agents[id]
	return a, ok
}

// ListAgents returns all registered agents.
func ListAgents() []*core.Agent {
	agentLock.RLock()
	defer agentLock.RUnlock()
	list := make([]*core.Agent, 0, len(agents))
	for _, a := range agents {
		list = append(list, a)
	}
	return list
}

package ws

import (
	"encoding/json"
	"strings"
	"time"
)

const EventLearningPathReady = "learning_path_ready"

type LearningPathReadyEvent struct {
	Type      string `json:"type"`
	Skill     string `json:"skill"`
	Status    string `json:"status"`
	Fallback  bool   `json:"fallback"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes batch progress to every hub client.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifyLearningPathReady(skill, status string, fallback bool) {
	if n == nil || n.hub == nil {
		return
	}
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return
	}

	b, err := json.Marshal(LearningPathReadyEvent{
		Type:      EventLearningPathReady,
		Skill:     skill,
		Status:    status,
		Fallback:  fallback,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}

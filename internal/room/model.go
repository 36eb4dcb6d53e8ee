package room

import "fmt"

// Member é um participante conectado a uma sala.
// O primeiro a entrar vira host.
type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// Status de quest. A quest pertence a exatamente uma das três listas do
// quadro da sala; mudar de lista é a única forma do status mudar.
const (
	QuestPending   = "pending"
	QuestActive    = "active"
	QuestCompleted = "completed"
)

// Quest é uma tarefa de networking/social oferecida na sala
type Quest struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
	Target      string `json:"target,omitempty"`
	Reward      int64  `json:"reward,omitempty"`
	Status      string `json:"status,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	AssignedBy  string `json:"assignedBy,omitempty"`
	CompletedBy string `json:"completedBy,omitempty"`
}

// Snapshot é a mensagem room-updated enviada após qualquer mutação da sala.
// Sempre o estado completo, nunca um diff.
type Snapshot struct {
	Type            string   `json:"type"`
	Members         []Member `json:"members"`
	PendingQuests   []Quest  `json:"pendingQuests"`
	ActiveQuests    []Quest  `json:"activeQuests"`
	CompletedQuests []Quest  `json:"completedQuests"`
}

// displayName aplica o nome padrão quando o cliente não envia um
func displayName(userID, name string) string {
	if name != "" {
		return name
	}
	suffix := userID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("User %s", suffix)
}

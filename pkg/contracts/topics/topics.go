package topics

const (
	// Apostas
	BetPlaced   = "bet_placed"
	BetResolved = "bet_resolved"

	// Quests
	QuestCompleted = "quest_completed"
)

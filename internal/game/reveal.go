package game

// Voter is one player who picked a given option, with the bet and lateness
// penalty they carried into the round.
type Voter struct {
	Name    string `json:"name"`
	Bet     int    `json:"bet"`
	Penalty int    `json:"penalty"`
}

// RevealItem is one card of the staged disclosure. AuthorName is empty for
// the truth card.
type RevealItem struct {
	Text       string     `json:"text"`
	Type       OptionType `json:"type"`
	AuthorName string     `json:"authorName,omitempty"`
	Voters     []Voter    `json:"voters"`
}

// buildRevealData derives the reveal sequence from the voting options. Lie
// cards keep their shuffle order and all precede the truth card (a stable
// partition, never a fresh shuffle). The server holds no reveal cursor; it
// only relays the host's advance signal, so every client walks the same
// sequence.
func (r *Room) buildRevealData() []RevealItem {
	lies := make([]RevealItem, 0, len(r.ShuffledOptions))
	var truths []RevealItem

	for _, option := range r.ShuffledOptions {
		item := RevealItem{
			Text:   option.Text,
			Type:   option.Type,
			Voters: make([]Voter, 0),
		}

		for _, p := range r.Players {
			if r.Votes[p.ID] == option.Text {
				item.Voters = append(item.Voters, Voter{
					Name:    p.Name,
					Bet:     r.Bets[p.ID],
					Penalty: r.Penalties[p.ID],
				})
			}
		}

		if option.Type == OptionLie {
			if author := r.FindPlayer(option.AuthorID); author != nil {
				item.AuthorName = author.Name
			} else {
				item.AuthorName = "Unknown"
			}
			lies = append(lies, item)
		} else {
			truths = append(truths, item)
		}
	}

	return append(lies, truths...)
}

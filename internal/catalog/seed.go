package catalog

func init() {
	c = buildCatalog(seedCategories())
	if err := validateCategories(c.categories); err != nil {
		panic("catalog: " + err.Error())
	}
}

func seedCategories() []Category {
	return []Category{
		{
			Name: "Core Tactical Motifs",
			Themes: []string{
				"Fork",
				"Discovered attack",
				"Pin",
				"Skewer",
				"Hanging piece",
				"Capture the defender",
				"Advanced pawn",
				"Exposed king",
			},
		},
		{
			Name: "Common Mating Patterns",
			Themes: []string{
				"Back rank mate",
				"Smothered mate",
				"Arabian mate",
				"Anastasia's mate",
				"Dovetail mate",
				"Double bishop mate",
				"Hook mate",
				"Kill box mate",
				"Boden's mate",
			},
		},
		{
			Name: "Intermediate Tactical Themes",
			Themes: []string{
				"Sacrifice",
				"Deflection",
				"Attraction",
				"Quiet move",
				"Intermezzo (Zwischenzug)",
				"X-Ray attack",
				"Interference",
				"Trapped piece",
			},
		},
		{
			Name: "Special Endgame Tactics",
			Themes: []string{
				"Rook endgame",
				"Pawn endgame",
				"Queen endgame",
				"Knight endgame",
				"Bishop endgame",
				"Queen and rook",
			},
		},
		{
			Name: "Advanced Concepts",
			Themes: []string{
				"Zugzwang",
				"Clearance",
				"Promotion",
				"Underpromotion",
				"En passant",
				"Defensive move",
			},
		},
		{
			Name: "Study by Phases of the Game",
			Themes: []string{
				"Opening tactics",
				"Middlegame tactics",
				"Endgame tactics",
			},
		},
		{
			Name: "Mates in Moves",
			Themes: []string{
				"Mate in 1",
				"Mate in 2",
				"Mate in 3",
				"Mate in 4 or more",
			},
		},
		{
			Name: "Special Themes and Challenges",
			Themes: []string{
				"Equality puzzles",
				"Advantage puzzles",
				"Crushing puzzles",
				"Castling",
			},
		},
	}
}

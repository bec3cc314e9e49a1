package game

// DefaultQuestions is the built-in question pool. Each prompt contains a
// blank marker that players fill with their lie; answers are kept short so
// lowercased exact-match voting works.
func DefaultQuestions() []Question {
	return []Question{
		{Text: "The only mammal capable of true flight is the ___.", Answer: "bat"},
		{Text: "A group of crows is called a ___.", Answer: "murder"},
		{Text: "The Eiffel Tower grows taller in summer because of ___.", Answer: "heat"},
		{Text: "Honey never spoils because it contains almost no ___.", Answer: "water"},
		{Text: "The unicorn is the national animal of ___.", Answer: "scotland"},
		{Text: "Octopuses have ___ hearts.", Answer: "three"},
		{Text: "The shortest war in history lasted about 38 ___.", Answer: "minutes"},
		{Text: "Bananas are botanically classified as ___.", Answer: "berries"},
		{Text: "A bolt of lightning is five times hotter than the surface of the ___.", Answer: "sun"},
		{Text: "The first animal launched into orbit was a ___.", Answer: "dog"},
		{Text: "In Switzerland it is illegal to own just one ___.", Answer: "guinea pig"},
		{Text: "The fingerprints of a ___ are nearly identical to a human's.", Answer: "koala"},
		{Text: "A flock of flamingos is called a ___.", Answer: "flamboyance"},
		{Text: "The inventor of the frisbee was cremated and turned into a ___.", Answer: "frisbee"},
		{Text: "Scotland's official national drink after whisky is ___.", Answer: "irn-bru"},
		{Text: "The dot over a lowercase i is called a ___.", Answer: "tittle"},
		{Text: "Venus is the only planet that rotates ___.", Answer: "clockwise"},
		{Text: "A shrimp's heart is located in its ___.", Answer: "head"},
		{Text: "The ___ is blue.", Answer: "sky"},
		{Text: "Wombat droppings are shaped like ___.", Answer: "cubes"},
	}
}

package conversation

import (
	"fmt"
	"math/rand/v2"
)

var visitorAdjectives = [20]string{
	"Cute", "Swift", "Brave", "Clever", "Kind",
	"Lively", "Cool", "Funny", "Mysterious", "Happy",
	"Cheerful", "Spirited", "Witty", "Confident", "Lovely",
	"Curious", "Warm", "Bright", "Free", "Excited",
}

var visitorAnimals = [20]string{
	"Squirrel", "Bear", "Rabbit", "Fox", "Cat",
	"Puppy", "Penguin", "Koala", "Panda", "Lion",
	"Tiger", "Dolphin", "Owl", "Eagle", "Hedgehog",
	"Otter", "Raccoon", "Giraffe", "Elephant", "Hamster",
}

// generateVisitorName pairs a random adjective with a random animal. The
// result is generated once per session and reused for every message, so a
// visitor's messages stay bound to one identity.
func generateVisitorName() string {
	adjective := visitorAdjectives[rand.IntN(len(visitorAdjectives))]
	animal := visitorAnimals[rand.IntN(len(visitorAnimals))]
	return fmt.Sprintf("%s %s (visitor)", adjective, animal)
}

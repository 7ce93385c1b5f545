package game

// MinSeatsToStart is the smallest roster a round can start with. Kept
// centralized so tests and local runs adjust one place.
const MinSeatsToStart = 2

// DefaultMaxSeats caps the roster of a room.
const DefaultMaxSeats = 4

// CardsPerDeal is the starting hand size dealt to every seat.
const CardsPerDeal = 5

package model

// Tournament is a competitive event: a regional regular season, a
// regional or international playoff, or an invitational.
type Tournament struct {
	ID             uint64
	SaveID         string
	SeasonID       uint32
	TournamentType TournamentType
	Name           string
	RegionID       *uint64 // nil for global events
	Status         TournamentStatus
}

// PlacementBucket names a finishing-position bucket inferred from bracket
// stage labels . Buckets beyond Fourth are ranges (e.g. Fifth8th)
// rather than exact placements, matching what the bracket shapes can
// actually distinguish.
type PlacementBucket string

const (
	Champion       PlacementBucket = "Champion"
	RunnerUp       PlacementBucket = "RunnerUp"
	Third          PlacementBucket = "Third"
	Fourth         PlacementBucket = "Fourth"
	Fifth8th       PlacementBucket = "Fifth8th"
	QuarterLoser   PlacementBucket = "QuarterLoser"
	// Participant and NonParticipant are ICP-only buckets: every team
	// in the champion region is credited one or the other depending on
	// whether it actually played.
	Participant    PlacementBucket = "Participant"
	NonParticipant PlacementBucket = "NonParticipant"
)

// Placement pairs a team (or, for ICP, a region) with its finishing bucket.
type Placement struct {
	TeamID   uint64
	RegionID *uint64 // set instead of TeamID for ICP's region-level results
	Bucket   PlacementBucket
}

package resolver

import "esports-career-sim/model"

// pointsTable and prizeTable hold the (tournament_type, placement_bucket)
// lookups the resolver consults. Values scale with a tournament's prestige: a
// regional regular season pays far less than the World Championship, and
// every global event outpays every regional one, mirroring the prize-pool
// tiers real circuits use.
var pointsTable = map[model.TournamentType]map[model.PlacementBucket]uint32{
	model.TTSpringRegular:  regularSeasonPoints,
	model.TTSummerRegular:  regularSeasonPoints,
	model.TTRegionalRegular: regularSeasonPoints,
	model.TTSpringPlayoffs: regionalPlayoffPoints,
	model.TTSummerPlayoffs: regionalPlayoffPoints,
	model.TTRegionalPlayoffs: regionalPlayoffPoints,
	model.TTMsi:            {model.Champion: 300, model.RunnerUp: 200, model.Third: 120, model.Fourth: 100, model.Fifth8th: 50},
	model.TTShanghaiMasters: {model.Champion: 300, model.RunnerUp: 200, model.Third: 120, model.Fourth: 100, model.Fifth8th: 50},
	model.TTMadridMasters: {model.Champion: 250, model.RunnerUp: 180, model.Third: 120, model.Fourth: 100, model.Fifth8th: 60, model.QuarterLoser: 30},
	model.TTClaudeIntercontinental: {model.Champion: 250, model.RunnerUp: 180, model.Third: 120, model.Fourth: 100, model.Fifth8th: 60, model.QuarterLoser: 30},
	model.TTWorldChampionship: {model.Champion: 500, model.RunnerUp: 350, model.Third: 220, model.Fourth: 180, model.Fifth8th: 100, model.QuarterLoser: 60},
	model.TTIcpIntercontinental: {model.Champion: 200, model.RunnerUp: 140, model.Third: 90, model.Fourth: 70, model.Fifth8th: 40, model.Participant: 30, model.NonParticipant: 10},
	model.TTSuperIntercontinental: {model.Champion: 220, model.RunnerUp: 150, model.Third: 100, model.Fourth: 80, model.Fifth8th: 45, model.QuarterLoser: 20},
	model.TTInvitational: {model.Champion: 150, model.RunnerUp: 100, model.Third: 70, model.Fourth: 55, model.Fifth8th: 30},
}

var regularSeasonPoints = map[model.PlacementBucket]uint32{
	model.Champion: 80, model.RunnerUp: 60, model.Third: 45, model.Fourth: 35, model.Fifth8th: 15,
}

var regionalPlayoffPoints = map[model.PlacementBucket]uint32{
	model.Champion: 100, model.RunnerUp: 70, model.Third: 50, model.Fourth: 40, model.Fifth8th: 20,
}

// PointsFor returns the annual points a (tournament_type, placement_bucket)
// pair earns. Unlisted combinations earn nothing (e.g. a Participant
// bucket outside ICP, or a bucket a given tournament shape never produces).
func PointsFor(tt model.TournamentType, bucket model.PlacementBucket) uint32 {
	table, ok := pointsTable[tt]
	if !ok {
		return 0
	}
	return table[bucket]
}

// prizeTable mirrors pointsTable but in in-game currency units, scaled
// roughly a thousandfold above points to read as a meaningful balance change.
var prizeTable = map[model.TournamentType]map[model.PlacementBucket]int64{
	model.TTSpringPlayoffs:   regionalPrize,
	model.TTSummerPlayoffs:   regionalPrize,
	model.TTRegionalPlayoffs: regionalPrize,
	model.TTMsi:             {model.Champion: 500000, model.RunnerUp: 300000, model.Third: 175000, model.Fourth: 125000, model.Fifth8th: 50000},
	model.TTShanghaiMasters: {model.Champion: 500000, model.RunnerUp: 300000, model.Third: 175000, model.Fourth: 125000, model.Fifth8th: 50000},
	model.TTMadridMasters:   {model.Champion: 400000, model.RunnerUp: 250000, model.Third: 150000, model.Fourth: 110000, model.Fifth8th: 60000, model.QuarterLoser: 25000},
	model.TTClaudeIntercontinental: {model.Champion: 400000, model.RunnerUp: 250000, model.Third: 150000, model.Fourth: 110000, model.Fifth8th: 60000, model.QuarterLoser: 25000},
	model.TTWorldChampionship: {model.Champion: 1500000, model.RunnerUp: 900000, model.Third: 500000, model.Fourth: 350000, model.Fifth8th: 150000, model.QuarterLoser: 75000},
	model.TTIcpIntercontinental:   {model.Champion: 350000, model.RunnerUp: 225000, model.Third: 125000, model.Fourth: 90000, model.Fifth8th: 45000, model.Participant: 20000, model.NonParticipant: 5000},
	model.TTSuperIntercontinental: {model.Champion: 375000, model.RunnerUp: 235000, model.Third: 135000, model.Fourth: 100000, model.Fifth8th: 50000, model.QuarterLoser: 20000},
	model.TTInvitational:          {model.Champion: 250000, model.RunnerUp: 160000, model.Third: 100000, model.Fourth: 75000, model.Fifth8th: 35000},
}

var regionalPrize = map[model.PlacementBucket]int64{
	model.Champion: 150000, model.RunnerUp: 90000, model.Third: 60000, model.Fourth: 45000, model.Fifth8th: 20000,
}

// PrizeFor returns the prize money a (tournament_type, placement_bucket)
// pair earns, or 0 for combinations that don't pay out (e.g. regular
// season, which credits annual points but no prize money).
func PrizeFor(tt model.TournamentType, bucket model.PlacementBucket) int64 {
	table, ok := prizeTable[tt]
	if !ok {
		return 0
	}
	return table[bucket]
}

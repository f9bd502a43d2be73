package scenario

// builtin is the package-level library singleton built from the seed sets.
var builtin = NewLibrary(seedSets())

// Built-in content set ids, in campaign order.
const (
	SetOpenLate     = "open-late"
	SetOpenEarly    = "open-early"
	SetBlindDefense = "blind-defense"
	SetSmallBlind   = "small-blind"
	SetFacing3Bet   = "facing-3bet"
	SetThreeBetIP   = "three-bet-ip"
	SetSqueeze      = "squeeze"
	SetShortStack   = "short-stack"
	SetBubble       = "bubble-icm"
	SetDeepStack    = "deep-stack"
)

func sc(key, hand, pos, situation string, correct Action, category, explanation string, alts ...Alternate) Scenario {
	return Scenario{
		Key:           key,
		Hand:          hand,
		Position:      pos,
		Situation:     situation,
		CorrectAction: correct,
		Alternates:    alts,
		Explanation:   explanation,
		Category:      category,
	}
}

func alt(a Action, note string) Alternate {
	return Alternate{Action: a, Note: note}
}

func seedSets() map[string][]Scenario {
	const (
		foldedTo  = "folded to you"
		vsBTNOpen = "BTN opens 2.5bb, SB folds"
		vs3Bet    = "you open, the player behind 3-bets to 9bb"
	)
	return map[string][]Scenario{
		SetOpenLate: {
			sc("ol-btn-a5s", "A5s", "BTN", foldedTo, ActionRaise, "open", "Suited wheel aces are a standard button open: playable, with blockers.",
				alt(ActionFold, "Too tight on the button."), alt(ActionCall, "Limping forfeits fold equity.")),
			sc("ol-btn-k9o", "K9o", "BTN", foldedTo, ActionRaise, "open", "Offsuit kings down to K8o are profitable button opens.",
				alt(ActionFold, "Leaves money on the table in the widest seat.")),
			sc("ol-btn-72o", "72o", "BTN", foldedTo, ActionFold, "open", "The worst hand in poker stays out even on the button.",
				alt(ActionRaise, "No equity when called.")),
			sc("ol-co-qto", "QTo", "CO", foldedTo, ActionRaise, "open", "QTo opens from the cutoff; it is dominated less often with fewer players left.",
				alt(ActionFold, "Too tight from the cutoff.")),
			sc("ol-co-j7s", "J7s", "CO", foldedTo, ActionFold, "open", "J7s is below the cutoff range; it plays poorly out of position to a 3-bet.",
				alt(ActionRaise, "Marginal hands lose against the button and blinds.")),
			sc("ol-btn-65s", "65s", "BTN", foldedTo, ActionRaise, "open", "Suited connectors realize equity well in position.",
				alt(ActionFold, "Gives up a profitable steal.")),
			sc("ol-co-22", "22", "CO", foldedTo, ActionRaise, "open", "All pairs open from the cutoff in a 100bb game.",
				alt(ActionCall, "Open-limping invites the blinds in cheaply.")),
			sc("ol-btn-t4o", "T4o", "BTN", foldedTo, ActionFold, "open", "T4o is outside even a wide button range.",
				alt(ActionRaise, "Too loose; little playability.")),
		},
		SetOpenEarly: {
			sc("oe-utg-ajo", "AJo", "UTG", foldedTo, ActionRaise, "open", "AJo is a standard UTG open at six-max.",
				alt(ActionFold, "Too tight for six-max.")),
			sc("oe-utg-kjo", "KJo", "UTG", foldedTo, ActionFold, "open", "KJo is dominated too often by the ranges that continue against an UTG open.",
				alt(ActionRaise, "Reverse implied odds against AK, AJ, KQ.")),
			sc("oe-utg-76s", "76s", "UTG", foldedTo, ActionFold, "open", "Small suited connectors are too weak under the gun.",
				alt(ActionRaise, "Out of position with five players behind.")),
			sc("oe-mp-a9s", "A9s", "MP", foldedTo, ActionRaise, "open", "Suited aces through A9s open from middle position.",
				alt(ActionFold, "Too tight.")),
			sc("oe-utg-55", "55", "UTG", foldedTo, ActionRaise, "open", "Small pairs open UTG for set value in a 100bb game.",
				alt(ActionCall, "Limping is exploitable.")),
			sc("oe-mp-qjo", "QJo", "MP", foldedTo, ActionFold, "open", "QJo from middle position is often dominated; fold and wait for position.",
				alt(ActionRaise, "Loose against four players behind.")),
			sc("oe-utg-kqs", "KQs", "UTG", foldedTo, ActionRaise, "open", "KQs is a strong open from every seat.",
				alt(ActionFold, "Far too tight.")),
			sc("oe-mp-t9s", "T9s", "MP", foldedTo, ActionRaise, "open", "T9s is the weakest suited connector in a middle-position range.",
				alt(ActionFold, "Slightly too tight.")),
		},
		SetBlindDefense: {
			sc("bd-bb-k5s", "K5s", "BB", vsBTNOpen, ActionCall, "defend", "K5s has the price and playability to defend versus a wide button range.",
				alt(ActionFold, "Over-folding the big blind."), alt(ActionRaise, "Better as a call than a 3-bet bluff.")),
			sc("bd-bb-aqo", "AQo", "BB", vsBTNOpen, ActionRaise, "defend", "AQo is ahead of a button range and 3-bets for value.",
				alt(ActionCall, "Too passive; lets the button realize equity.")),
			sc("bd-bb-93o", "93o", "BB", vsBTNOpen, ActionFold, "defend", "93o has too little equity even with the discount.",
				alt(ActionCall, "Pure burn.")),
			sc("bd-bb-j8o", "J8o", "BB", vsBTNOpen, ActionCall, "defend", "J8o defends at 2.5bb; pot odds cover its equity.",
				alt(ActionFold, "Over-folding.")),
			sc("bd-bb-qq", "QQ", "BB", vsBTNOpen, ActionRaise, "defend", "Premium pairs 3-bet for value.",
				alt(ActionCall, "Slowplaying out of position gives free cards.")),
			sc("bd-bb-a2s", "A2s", "BB", vsBTNOpen, ActionRaise, "defend", "A2s makes a strong 3-bet bluff with an ace blocker.",
				alt(ActionCall, "Calling is fine but the blocker favors a 3-bet.")),
			sc("bd-bb-64o", "64o", "BB", vsBTNOpen, ActionFold, "defend", "64o lacks both high-card and connected equity.",
				alt(ActionCall, "Too loose.")),
		},
		SetSmallBlind: {
			sc("sb-ato", "ATo", "SB", "folded to you", ActionRaise, "blind-vs-blind", "ATo is a value raise against the big blind.",
				alt(ActionCall, "Completing caps your range.")),
			sc("sb-q4s", "Q4s", "SB", "folded to you", ActionRaise, "blind-vs-blind", "Blind versus blind ranges are wide; Q4s raises.",
				alt(ActionFold, "Too tight heads-up.")),
			sc("sb-83o", "83o", "SB", "folded to you", ActionFold, "blind-vs-blind", "83o loses money even heads-up out of position.",
				alt(ActionRaise, "Too loose.")),
			sc("sb-vs-co-kjs", "KJs", "SB", "CO opens 2.3bb", ActionRaise, "blind-vs-blind", "From the small blind play 3-bet or fold against late opens.",
				alt(ActionCall, "Flatting invites a squeeze from the big blind.")),
			sc("sb-vs-co-98s", "98s", "SB", "CO opens 2.3bb", ActionFold, "blind-vs-blind", "98s is too weak to 3-bet and calling is exploitable from the small blind.",
				alt(ActionCall, "Out of position against two players.")),
			sc("sb-66", "66", "SB", "folded to you", ActionRaise, "blind-vs-blind", "Pairs raise blind versus blind.",
				alt(ActionCall, "Completing lets the big blind realize equity.")),
		},
		SetFacing3Bet: {
			sc("f3-co-ajs", "AJs", "CO", vs3Bet, ActionCall, "vs-3bet", "AJs plays well in position against a button 3-bet.",
				alt(ActionFold, "Over-folding to 3-bets."), alt(ActionRaise, "4-betting turns it into a bluff.")),
			sc("f3-utg-kqo", "KQo", "UTG", vs3Bet, ActionFold, "vs-3bet", "KQo is dominated by a tight 3-bet range.",
				alt(ActionCall, "Reverse implied odds.")),
			sc("f3-btn-kk", "KK", "BTN", vs3Bet, ActionRaise, "vs-3bet", "Kings 4-bet for value.",
				alt(ActionCall, "Underrepresents a premium hand.")),
			sc("f3-co-a5s", "A5s", "CO", vs3Bet, ActionRaise, "vs-3bet", "A5s is the classic 4-bet bluff with an ace blocker.",
				alt(ActionCall, "Poor equity realization when called."), alt(ActionFold, "Folding is fine but misses a bluff.")),
			sc("f3-btn-99", "99", "BTN", vs3Bet, ActionCall, "vs-3bet", "Medium pairs call in position against a blind 3-bet.",
				alt(ActionRaise, "Folds out worse and gets called by better.")),
			sc("f3-mp-t8s", "T8s", "MP", vs3Bet, ActionFold, "vs-3bet", "T8s cannot call a 3-bet out of position profitably.",
				alt(ActionCall, "Bleeds chips.")),
		},
		SetThreeBetIP: {
			sc("3b-btn-vs-co-aqs", "AQs", "BTN", "CO opens 2.5bb", ActionRaise, "3bet", "AQs 3-bets for value against a cutoff open.",
				alt(ActionCall, "Flatting lets the blinds in.")),
			sc("3b-btn-vs-co-kto", "KTo", "BTN", "CO opens 2.5bb", ActionFold, "3bet", "KTo is dominated by the cutoff's continuing range.",
				alt(ActionCall, "Reverse implied odds.")),
			sc("3b-btn-vs-co-87s", "87s", "BTN", "CO opens 2.5bb", ActionCall, "3bet", "87s flats in position with good playability.",
				alt(ActionRaise, "A fine mix, but calling is the default.")),
			sc("3b-co-vs-hj-a4s", "A4s", "CO", "HJ opens 2.5bb", ActionRaise, "3bet", "Suited wheel aces are the best 3-bet bluffs.",
				alt(ActionFold, "Misses a profitable bluff.")),
			sc("3b-btn-vs-utg-jj", "JJ", "BTN", "UTG opens 2.5bb", ActionRaise, "3bet", "Jacks 3-bet for value even against an early open.",
				alt(ActionCall, "Acceptable, but raising builds the pot with an overpair.")),
			sc("3b-co-vs-utg-kjs", "KJs", "CO", "UTG opens 2.5bb", ActionFold, "3bet", "KJs is too dominated by an UTG range to continue.",
				alt(ActionCall, "Dominated by AK, KQ.")),
		},
		SetSqueeze: {
			sc("sq-bb-aks", "AKs", "BB", "CO opens, BTN calls", ActionRaise, "squeeze", "Squeeze for value; a dead-money pot with the best hand.",
				alt(ActionCall, "Passive with a premium.")),
			sc("sq-sb-a3s", "A3s", "SB", "HJ opens, CO calls", ActionRaise, "squeeze", "A3s squeezes well: blockers and the caller's capped range.",
				alt(ActionCall, "Flatting from the small blind is exploitable.")),
			sc("sq-bb-kto", "KTo", "BB", "CO opens, BTN calls", ActionFold, "squeeze", "KTo is too weak to squeeze and multiway calls lose.",
				alt(ActionCall, "Dominated multiway.")),
			sc("sq-bb-76s", "76s", "BB", "CO opens, BTN calls", ActionCall, "squeeze", "Suited connectors close the action with a great price.",
				alt(ActionRaise, "Too thin as a squeeze.")),
			sc("sq-btn-tt", "TT", "BTN", "MP opens, CO calls", ActionRaise, "squeeze", "Tens squeeze for value and isolation.",
				alt(ActionCall, "Lets the blinds in.")),
			sc("sq-sb-q9o", "Q9o", "SB", "HJ opens, CO calls", ActionFold, "squeeze", "Q9o has no business in a multiway pot out of position.",
				alt(ActionCall, "Dominated.")),
		},
		SetShortStack: {
			sc("ss-btn-k8o", "K8o", "BTN", "20bb effective, folded to you", ActionRaise, "push-fold", "At 20bb K8o is a button open-shove.",
				alt(ActionFold, "Too tight at this depth.")),
			sc("ss-utg-a7o", "A7o", "UTG", "20bb effective, folded to you", ActionFold, "push-fold", "A7o is too weak to shove from early position at 20bb.",
				alt(ActionRaise, "Called by better aces too often.")),
			sc("ss-sb-j5s", "J5s", "SB", "15bb effective, folded to you", ActionRaise, "push-fold", "Small blind shove ranges at 15bb are very wide.",
				alt(ActionFold, "Over-folding the small blind.")),
			sc("ss-bb-a9o", "A9o", "BB", "15bb: BTN shoves", ActionCall, "push-fold", "A9o is well ahead of a 15bb button shoving range.",
				alt(ActionFold, "Over-folding to shoves.")),
			sc("ss-bb-k4o", "K4o", "BB", "12bb: SB shoves", ActionCall, "push-fold", "Against a wide small blind shove, K4o has enough equity.",
				alt(ActionFold, "Too tight against a wide range.")),
			sc("ss-co-q7o", "Q7o", "CO", "20bb effective, folded to you", ActionFold, "push-fold", "Q7o is below the cutoff shoving range at 20bb.",
				alt(ActionRaise, "Too loose with three players behind.")),
		},
		SetBubble: {
			sc("bu-bb-aqo", "AQo", "BB", "bubble, chip leader shoves from BTN", ActionFold, "icm", "ICM pressure makes AQo a fold against the covering stack.",
				alt(ActionCall, "Busting costs more equity than doubling gains.")),
			sc("bu-btn-q8s", "Q8s", "BTN", "bubble, short stacks in blinds", ActionRaise, "icm", "Pressure the short stacks who cannot call wide.",
				alt(ActionFold, "Misses free ICM equity.")),
			sc("bu-bb-qq", "QQ", "BB", "bubble, medium stack shoves from CO", ActionCall, "icm", "Queens are strong enough to call even with ICM pressure.",
				alt(ActionFold, "Too tight even for ICM.")),
			sc("bu-sb-a4o", "A4o", "SB", "bubble, big stack in BB", ActionFold, "icm", "Do not shove into the covering big stack with a marginal ace.",
				alt(ActionRaise, "The big blind can call wide.")),
			sc("bu-co-k9s", "K9s", "CO", "bubble, folded to you, you are chip leader", ActionRaise, "icm", "The chip leader opens wide on the bubble.",
				alt(ActionFold, "Wastes chip-leader leverage.")),
			sc("bu-btn-55", "55", "BTN", "bubble, tight big stack shoves from CO", ActionFold, "icm", "Small pairs fold to a covering shove on the bubble.",
				alt(ActionCall, "A coin flip at best for your tournament life.")),
		},
		SetDeepStack: {
			sc("ds-btn-86s", "86s", "BTN", "200bb, CO opens 2.5bb", ActionCall, "deep", "Deep stacks increase implied odds for suited connectors in position.",
				alt(ActionFold, "Too tight at 200bb."), alt(ActionRaise, "3-bet bloats a pot you want to see cheaply.")),
			sc("ds-utg-ajo", "AJo", "UTG", "200bb, folded to you", ActionFold, "deep", "Deep stacks punish dominated offsuit broadways out of position.",
				alt(ActionRaise, "Reverse implied odds grow with depth.")),
			sc("ds-bb-33", "33", "BB", "200bb, BTN opens 2.5bb", ActionCall, "deep", "Set mining is at its best 200bb deep.",
				alt(ActionFold, "Passes up huge implied odds.")),
			sc("ds-co-aks", "AKs", "CO", "200bb, MP 3-bets to 9bb", ActionCall, "deep", "Deep, AKs often prefers calling to avoid a stack-off against only better hands.",
				alt(ActionRaise, "5-bet pots deep get called mostly by AA and KK.")),
			sc("ds-btn-kqo", "KQo", "BTN", "200bb, UTG opens 2.5bb", ActionFold, "deep", "KQo is dominated by UTG's deep-stack range.",
				alt(ActionCall, "Dominated kicker problems deep.")),
			sc("ds-sb-a5s", "A5s", "SB", "200bb, BTN opens 2.5bb", ActionRaise, "deep", "A5s still 3-bets from the small blind; nut-flush potential deep.",
				alt(ActionCall, "Flatting from the small blind is exploitable.")),
		},
	}
}

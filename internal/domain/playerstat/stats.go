package playerstat

import "strings"

// statField binds a stat key to the struct field holding it. The whole
// column-name-to-field mapping lives in this one table instead of
// scattered string lookups.
type statField struct {
	key    string
	access func(*PlayerMatchStat) **float64
}

var statFields = []statField{
	{"goals", func(p *PlayerMatchStat) **float64 { return &p.Goals }},
	{"assists", func(p *PlayerMatchStat) **float64 { return &p.Assists }},
	{"pens_made", func(p *PlayerMatchStat) **float64 { return &p.PensMade }},
	{"pens_att", func(p *PlayerMatchStat) **float64 { return &p.PensAtt }},
	{"pens_won", func(p *PlayerMatchStat) **float64 { return &p.PensWon }},
	{"pens_conceded", func(p *PlayerMatchStat) **float64 { return &p.PensConceded }},
	{"shots", func(p *PlayerMatchStat) **float64 { return &p.Shots }},
	{"shots_on_target", func(p *PlayerMatchStat) **float64 { return &p.ShotsOnTarget }},
	{"yellow_cards", func(p *PlayerMatchStat) **float64 { return &p.YellowCards }},
	{"red_cards", func(p *PlayerMatchStat) **float64 { return &p.RedCards }},
	{"fouls", func(p *PlayerMatchStat) **float64 { return &p.Fouls }},
	{"fouled", func(p *PlayerMatchStat) **float64 { return &p.Fouled }},
	{"offsides", func(p *PlayerMatchStat) **float64 { return &p.Offsides }},
	{"crosses", func(p *PlayerMatchStat) **float64 { return &p.Crosses }},
	{"own_goals", func(p *PlayerMatchStat) **float64 { return &p.OwnGoals }},
	{"touches", func(p *PlayerMatchStat) **float64 { return &p.Touches }},
	{"tackles", func(p *PlayerMatchStat) **float64 { return &p.Tackles }},
	{"tackles_won", func(p *PlayerMatchStat) **float64 { return &p.TacklesWon }},
	{"interceptions", func(p *PlayerMatchStat) **float64 { return &p.Interceptions }},
	{"blocks", func(p *PlayerMatchStat) **float64 { return &p.Blocks }},
	{"xg", func(p *PlayerMatchStat) **float64 { return &p.XG }},
	{"npxg", func(p *PlayerMatchStat) **float64 { return &p.NpXG }},
	{"xag", func(p *PlayerMatchStat) **float64 { return &p.XAG }},
	{"sca", func(p *PlayerMatchStat) **float64 { return &p.SCA }},
	{"gca", func(p *PlayerMatchStat) **float64 { return &p.GCA }},
	{"passes_completed", func(p *PlayerMatchStat) **float64 { return &p.PassesCompleted }},
	{"passes_attempted", func(p *PlayerMatchStat) **float64 { return &p.PassesAttempted }},
	{"pass_completion_pct", func(p *PlayerMatchStat) **float64 { return &p.PassCompletionPct }},
	{"progressive_passes", func(p *PlayerMatchStat) **float64 { return &p.ProgressivePasses }},
	{"carries", func(p *PlayerMatchStat) **float64 { return &p.Carries }},
	{"progressive_carries", func(p *PlayerMatchStat) **float64 { return &p.ProgressiveCarries }},
	{"take_ons_attempted", func(p *PlayerMatchStat) **float64 { return &p.TakeOnsAttempted }},
	{"take_ons_won", func(p *PlayerMatchStat) **float64 { return &p.TakeOnsWon }},
	{"shots_on_target_against", func(p *PlayerMatchStat) **float64 { return &p.ShotsOnTargetAgainst }},
	{"gk_goals_against", func(p *PlayerMatchStat) **float64 { return &p.GoalsAgainst }},
	{"saves", func(p *PlayerMatchStat) **float64 { return &p.Saves }},
	{"save_pct", func(p *PlayerMatchStat) **float64 { return &p.SavePct }},
	{"psxg", func(p *PlayerMatchStat) **float64 { return &p.PSxG }},
	{"launched_completed", func(p *PlayerMatchStat) **float64 { return &p.LaunchedCompleted }},
	{"launched_attempted", func(p *PlayerMatchStat) **float64 { return &p.LaunchedAttempted }},
	{"launched_cmp_pct", func(p *PlayerMatchStat) **float64 { return &p.LaunchedCmpPct }},
	{"gk_passes_attempted", func(p *PlayerMatchStat) **float64 { return &p.GKPassesAttempted }},
	{"throws", func(p *PlayerMatchStat) **float64 { return &p.Throws }},
	{"launch_pct", func(p *PlayerMatchStat) **float64 { return &p.LaunchPct }},
	{"avg_pass_length", func(p *PlayerMatchStat) **float64 { return &p.AvgPassLength }},
	{"goal_kicks", func(p *PlayerMatchStat) **float64 { return &p.GoalKicks }},
	{"goal_kick_launch_pct", func(p *PlayerMatchStat) **float64 { return &p.GoalKickLaunchPct }},
	{"avg_goal_kick_length", func(p *PlayerMatchStat) **float64 { return &p.AvgGoalKickLength }},
	{"crosses_faced", func(p *PlayerMatchStat) **float64 { return &p.CrossesFaced }},
	{"crosses_stopped", func(p *PlayerMatchStat) **float64 { return &p.CrossesStopped }},
	{"cross_stop_pct", func(p *PlayerMatchStat) **float64 { return &p.CrossStopPct }},
	{"def_actions_outside_box", func(p *PlayerMatchStat) **float64 { return &p.DefActionsOutsideBox }},
	{"avg_def_action_distance", func(p *PlayerMatchStat) **float64 { return &p.AvgDefActionDistance }},
}

var statFieldByKey = func() map[string]func(*PlayerMatchStat) **float64 {
	out := make(map[string]func(*PlayerMatchStat) **float64, len(statFields))
	for _, field := range statFields {
		out[field.key] = field.access
	}
	return out
}()

// StatKeys lists every known stat key in declaration order.
func StatKeys() []string {
	out := make([]string, 0, len(statFields))
	for _, field := range statFields {
		out = append(out, field.key)
	}
	return out
}

// Stat reads a counter by key; the second return is false for unknown keys.
func (p *PlayerMatchStat) Stat(key string) (*float64, bool) {
	access, ok := statFieldByKey[key]
	if !ok {
		return nil, false
	}
	return *access(p), true
}

// SetStat writes a counter by key and reports whether the key is known.
func (p *PlayerMatchStat) SetStat(key string, value *float64) bool {
	access, ok := statFieldByKey[key]
	if !ok {
		return false
	}
	*access(p) = value
	return true
}

// IsPercentStat reports whether a key carries a percentage. Percentages
// are averaged with minutes weighting, never scaled to a per-90 basis.
func IsPercentStat(key string) bool {
	return strings.Contains(key, "pct")
}

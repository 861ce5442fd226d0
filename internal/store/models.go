package store

import "time"

// --------------------------------------------------------------------------
// Basketball
// --------------------------------------------------------------------------

// Player is a players row, optionally decorated with the active roster spot.
type Player struct {
	PlayerID       int64    `db:"player_id" json:"player_id"`
	FirstName      *string  `db:"first_name" json:"first_name"`
	LastName       *string  `db:"last_name" json:"last_name"`
	Position       *string  `db:"position" json:"position"`
	Age            *int     `db:"age" json:"age"`
	Height         *string  `db:"height" json:"height"`
	Weight         *int     `db:"weight" json:"weight"`
	YearsExp       *int     `db:"years_exp" json:"years_exp"`
	College        *string  `db:"college" json:"college"`
	CurrentSalary  *float64 `db:"current_salary" json:"current_salary"`
	ExpectedSalary *float64 `db:"expected_salary" json:"expected_salary"`
	PlayerStatus   string   `db:"player_status" json:"player_status"`
	CurrentTeamID  *int64   `db:"current_team_id" json:"current_team_id,omitempty"`
	CurrentTeam    *string  `db:"current_team" json:"current_team"`
	JerseyNum      *int     `db:"jersey_num" json:"jersey_num,omitempty"`
}

type PlayerFilter struct {
	Position  *string
	MinAge    *int
	MaxAge    *int
	TeamID    *int64
	MinSalary *float64
	MaxSalary *float64
}

// PlayerInput carries create and update fields; nil means absent.
type PlayerInput struct {
	FirstName      *string  `json:"first_name" validate:"omitempty,max=50"`
	LastName       *string  `json:"last_name" validate:"omitempty,max=50"`
	Position       *string  `json:"position" validate:"omitempty,max=20"`
	Age            *int     `json:"age" validate:"omitempty,gt=0"`
	Height         *string  `json:"height" validate:"omitempty,max=10"`
	Weight         *int     `json:"weight" validate:"omitempty,gt=0"`
	YearsExp       *int     `json:"years_exp" validate:"omitempty,gte=0"`
	College        *string  `json:"college" validate:"omitempty,max=100"`
	CurrentSalary  *float64 `json:"current_salary" validate:"omitempty,gte=0"`
	ExpectedSalary *float64 `json:"expected_salary" validate:"omitempty,gte=0"`
	PlayerStatus   *string  `json:"player_status" validate:"omitempty,max=20"`
}

// StatLine is a set of per-game averages.
type StatLine struct {
	GamesPlayed        int     `db:"games_played" json:"games_played"`
	Points             float64 `db:"points" json:"points"`
	Rebounds           float64 `db:"rebounds" json:"rebounds"`
	Assists            float64 `db:"assists" json:"assists"`
	Steals             float64 `db:"steals" json:"steals"`
	Blocks             float64 `db:"blocks" json:"blocks"`
	Turnovers          float64 `db:"turnovers" json:"turnovers"`
	MinutesPlayed      float64 `db:"minutes_played" json:"minutes_played"`
	PlusMinus          float64 `db:"plus_minus" json:"plus_minus"`
	ShootingPercentage float64 `db:"shooting_percentage" json:"shooting_percentage"`
	SeasonHigh         *int    `db:"season_high" json:"season_high,omitempty"`
	SeasonLow          *int    `db:"season_low" json:"season_low,omitempty"`
}

// RecentGame is one row of a player's recent box scores.
type RecentGame struct {
	GameID   int64  `db:"game_id" json:"game_id"`
	Date     string `db:"date" json:"date"`
	Opponent string `db:"opponent" json:"opponent"`
	Points   int    `db:"points" json:"points"`
	Rebounds int    `db:"rebounds" json:"rebounds"`
	Assists  int    `db:"assists" json:"assists"`
}

type StatsFilter struct {
	Season   *string
	GameType *string
}

// PlayerStats is the /players/{id}/stats payload.
type PlayerStats struct {
	Player      *Player      `json:"player"`
	Averages    StatLine     `json:"averages"`
	RecentGames []RecentGame `json:"recent_games"`
}

type Team struct {
	TeamID     int64   `db:"team_id" json:"team_id"`
	Name       *string `db:"name" json:"name"`
	Abrv       *string `db:"abrv" json:"abrv"`
	City       *string `db:"city" json:"city"`
	Conference *string `db:"conference" json:"conference"`
	Division   *string `db:"division" json:"division"`
}

type TeamInput struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Abrv       *string `json:"abrv" validate:"omitempty,max=5"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Conference *string `json:"conference" validate:"omitempty,max=20"`
	Division   *string `json:"division" validate:"omitempty,max=30"`
}

// RosterEntry is one active roster membership.
type RosterEntry struct {
	PlayerID   int64   `db:"player_id" json:"player_id"`
	FirstName  *string `db:"first_name" json:"first_name"`
	LastName   *string `db:"last_name" json:"last_name"`
	Position   *string `db:"position" json:"position"`
	Age        *int    `db:"age" json:"age"`
	JerseyNum  *int    `db:"jersey_num" json:"jersey_num"`
	JoinedDate string  `db:"joined_date" json:"joined_date"`
}

type RosterInput struct {
	PlayerID   int64      `json:"player_id" validate:"required,gt=0"`
	JerseyNum  *int       `json:"jersey_num" validate:"omitempty,gte=0,lte=99"`
	JoinedDate *time.Time `json:"-"`
}

type RosterPatch struct {
	JerseyNum *int       `json:"jersey_num" validate:"omitempty,gte=0,lte=99"`
	LeftDate  *time.Time `json:"-"`
}

type Game struct {
	GameID       int64   `db:"game_id" json:"game_id"`
	Date         string  `db:"date" json:"date"`
	GameTime     *string `db:"game_time" json:"game_time"`
	Season       string  `db:"season" json:"season"`
	GameType     string  `db:"game_type" json:"game_type"`
	IsPlayoff    bool    `db:"is_playoff" json:"is_playoff"`
	HomeTeamID   int64   `db:"home_team_id" json:"home_team_id"`
	AwayTeamID   int64   `db:"away_team_id" json:"away_team_id"`
	HomeTeamName *string `db:"home_team_name" json:"home_team_name"`
	AwayTeamName *string `db:"away_team_name" json:"away_team_name"`
	HomeScore    *int    `db:"home_score" json:"home_score"`
	AwayScore    *int    `db:"away_score" json:"away_score"`
	Status       string  `db:"status" json:"status"`
	Venue        *string `db:"venue" json:"venue"`
}

type GameFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Season    *string
	GameType  *string
	Status    *string
	TeamID    *int64
}

// GameInput holds writable game columns. Date is parsed by the caller.
type GameInput struct {
	Date       *time.Time `json:"-"`
	GameTime   *string    `json:"game_time" validate:"omitempty,max=20"`
	Season     *string    `json:"season" validate:"omitempty,max=10"`
	GameType   *string    `json:"game_type" validate:"omitempty,max=20"`
	IsPlayoff  *bool      `json:"is_playoff"`
	HomeTeamID *int64     `json:"home_team_id" validate:"omitempty,gt=0"`
	AwayTeamID *int64     `json:"away_team_id" validate:"omitempty,gt=0"`
	HomeScore  *int       `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore  *int       `json:"away_score" validate:"omitempty,gte=0"`
	Status     *string    `json:"status" validate:"omitempty,oneof=scheduled in_progress completed"`
	Venue      *string    `json:"venue" validate:"omitempty,max=100"`
}

// BoxScore is a player_game_stats row decorated with the player's name.
type BoxScore struct {
	PlayerID           int64    `db:"player_id" json:"player_id"`
	TeamID             int64    `db:"team_id" json:"team_id"`
	FirstName          *string  `db:"first_name" json:"first_name"`
	LastName           *string  `db:"last_name" json:"last_name"`
	Position           *string  `db:"position" json:"position"`
	Points             int      `db:"points" json:"points"`
	Rebounds           int      `db:"rebounds" json:"rebounds"`
	Assists            int      `db:"assists" json:"assists"`
	Steals             int      `db:"steals" json:"steals"`
	Blocks             int      `db:"blocks" json:"blocks"`
	Turnovers          int      `db:"turnovers" json:"turnovers"`
	MinutesPlayed      float64  `db:"minutes_played" json:"minutes_played"`
	ShootingPercentage *float64 `db:"shooting_percentage" json:"shooting_percentage"`
	PlusMinus          int      `db:"plus_minus" json:"plus_minus"`
}

// GameDetail is a game with both sides' box scores.
type GameDetail struct {
	Game
	HomeTeamStats []BoxScore `json:"home_team_stats"`
	AwayTeamStats []BoxScore `json:"away_team_stats"`
}

type BoxScoreInput struct {
	PlayerID           int64    `json:"player_id" validate:"required,gt=0"`
	TeamID             int64    `json:"team_id" validate:"required,gt=0"`
	Points             int      `json:"points" validate:"gte=0"`
	Rebounds           int      `json:"rebounds" validate:"gte=0"`
	Assists            int      `json:"assists" validate:"gte=0"`
	Steals             int      `json:"steals" validate:"gte=0"`
	Blocks             int      `json:"blocks" validate:"gte=0"`
	Turnovers          int      `json:"turnovers" validate:"gte=0"`
	MinutesPlayed      float64  `json:"minutes_played" validate:"gte=0,lte=48"`
	ShootingPercentage *float64 `json:"shooting_percentage" validate:"omitempty,gte=0,lte=1"`
	PlusMinus          int      `json:"plus_minus"`
}

// --------------------------------------------------------------------------
// Analytics
// --------------------------------------------------------------------------

type MatchupPlayer struct {
	PlayerID  int64   `db:"player_id" json:"player_id"`
	FirstName *string `db:"first_name" json:"first_name"`
	LastName  *string `db:"last_name" json:"last_name"`
	Position  *string `db:"position" json:"position"`
}

type MatchupGame struct {
	GameID          int64  `db:"game_id" json:"game_id"`
	Date            string `db:"date" json:"date"`
	Season          string `db:"season" json:"season"`
	Player1Points   int    `db:"player1_points" json:"player1_points"`
	Player1Rebounds int    `db:"player1_rebounds" json:"player1_rebounds"`
	Player1Assists  int    `db:"player1_assists" json:"player1_assists"`
	Player2Points   int    `db:"player2_points" json:"player2_points"`
	Player2Rebounds int    `db:"player2_rebounds" json:"player2_rebounds"`
	Player2Assists  int    `db:"player2_assists" json:"player2_assists"`
}

type RosterSummary struct {
	RosterSize int      `db:"roster_size" json:"roster_size"`
	AvgAge     *float64 `db:"avg_age" json:"avg_age"`
}

type TopScorer struct {
	PlayerID  int64   `db:"player_id" json:"player_id"`
	FirstName *string `db:"first_name" json:"first_name"`
	LastName  *string `db:"last_name" json:"last_name"`
	Position  *string `db:"position" json:"position"`
	AvgPoints float64 `db:"avg_points" json:"avg_points"`
	Games     int     `db:"games" json:"games"`
}

// OpponentReport is the scouting payload for one opponent.
type OpponentReport struct {
	Team           Team             `json:"team"`
	Opponent       Team             `json:"opponent"`
	RosterSummary  RosterSummary    `json:"roster_summary"`
	HeadToHead     []map[string]any `json:"head_to_head"`
	RecentGames    []map[string]any `json:"recent_games"`
	TopPlayers     []TopScorer      `json:"top_players"`
	HeadToHeadWins int              `json:"head_to_head_wins"`
	HeadToHeadLoss int              `json:"head_to_head_losses"`
}

type LineupStat struct {
	PlayerIDs       []int64  `db:"player_ids" json:"player_ids"`
	Players         string   `db:"players" json:"players"`
	PlusMinus       int      `db:"plus_minus" json:"plus_minus"`
	OffensiveRating *float64 `db:"offensive_rating" json:"offensive_rating"`
	DefensiveRating *float64 `db:"defensive_rating" json:"defensive_rating"`
	QuartersPlayed  int      `db:"quarters_played" json:"quarters_played"`
	GamesPlayed     int      `db:"games_played" json:"games_played"`
}

type LineupInput struct {
	TeamID          int64    `json:"team_id" validate:"required,gt=0"`
	GameID          *int64   `json:"game_id" validate:"omitempty,gt=0"`
	Quarter         *int     `json:"quarter" validate:"omitempty,gte=1,lte=8"`
	PlusMinus       int      `json:"plus_minus"`
	OffensiveRating *float64 `json:"offensive_rating"`
	DefensiveRating *float64 `json:"defensive_rating"`
	PlayerIDs       []int64  `json:"player_ids" validate:"required,len=5,unique,dive,gt=0"`
}

type TeamSeasonSummary struct {
	GamesPlayed int     `db:"games_played" json:"games_played"`
	Wins        int     `db:"wins" json:"wins"`
	Losses      int     `db:"losses" json:"losses"`
	AvgScored   float64 `db:"avg_scored" json:"avg_points_scored"`
	AvgAllowed  float64 `db:"avg_allowed" json:"avg_points_allowed"`
}

type ClutchBlock struct {
	Games           int      `db:"games" json:"games"`
	OffensiveRating *float64 `db:"offensive_rating" json:"offensive_rating"`
	DefensiveRating *float64 `db:"defensive_rating" json:"defensive_rating"`
	NetRating       *float64 `db:"net_rating" json:"net_rating"`
}

type QuarterSplit struct {
	Quarter       int      `db:"quarter" json:"quarter"`
	PointsFor     float64  `db:"points_for" json:"points_for"`
	PointsAgainst *float64 `db:"points_against" json:"points_against"`
}

type CloseGame struct {
	GameID    int64  `db:"game_id" json:"game_id"`
	Date      string `db:"date" json:"date"`
	Opponent  string `db:"opponent" json:"opponent"`
	TeamScore int    `db:"team_score" json:"team_score"`
	OppScore  int    `db:"opp_score" json:"opp_score"`
	Result    string `db:"-" json:"result"`
}

type Situational struct {
	TeamID     int64          `json:"team_id"`
	Clutch     ClutchBlock    `json:"clutch"`
	ByQuarter  []QuarterSplit `json:"by_quarter"`
	CloseGames []CloseGame    `json:"close_games"`
}

// --------------------------------------------------------------------------
// Strategy
// --------------------------------------------------------------------------

type GamePlan struct {
	PlanID              int64     `db:"plan_id" json:"plan_id"`
	TeamID              int64     `db:"team_id" json:"team_id"`
	OpponentID          *int64    `db:"opponent_id" json:"opponent_id"`
	GameID              *int64    `db:"game_id" json:"game_id"`
	PlanName            string    `db:"plan_name" json:"plan_name"`
	OffensiveStrategy   *string   `db:"offensive_strategy" json:"offensive_strategy"`
	DefensiveStrategy   *string   `db:"defensive_strategy" json:"defensive_strategy"`
	KeyMatchups         *string   `db:"key_matchups" json:"key_matchups"`
	SpecialInstructions *string   `db:"special_instructions" json:"special_instructions"`
	Status              string    `db:"status" json:"status"`
	CreatedDate         time.Time `db:"created_date" json:"created_date"`
	UpdatedDate         time.Time `db:"updated_date" json:"updated_date"`
	TeamName            *string   `db:"team_name" json:"team_name,omitempty"`
	OpponentName        *string   `db:"opponent_name" json:"opponent_name,omitempty"`
}

type PlanFilter struct {
	TeamID *int64
	Status *string
}

type GamePlanInput struct {
	TeamID              *int64  `json:"team_id" validate:"required,gt=0"`
	OpponentID          *int64  `json:"opponent_id" validate:"omitempty,gt=0"`
	GameID              *int64  `json:"game_id" validate:"omitempty,gt=0"`
	PlanName            *string `json:"plan_name" validate:"required,min=1,max=200"`
	OffensiveStrategy   *string `json:"offensive_strategy"`
	DefensiveStrategy   *string `json:"defensive_strategy"`
	KeyMatchups         *string `json:"key_matchups"`
	SpecialInstructions *string `json:"special_instructions"`
	Status              *string `json:"status" validate:"omitempty,oneof=draft active archived"`
}

type GamePlanPatch struct {
	PlanName            *string `json:"plan_name" validate:"omitempty,min=1,max=200"`
	OffensiveStrategy   *string `json:"offensive_strategy"`
	DefensiveStrategy   *string `json:"defensive_strategy"`
	KeyMatchups         *string `json:"key_matchups"`
	SpecialInstructions *string `json:"special_instructions"`
	Status              *string `json:"status" validate:"omitempty,oneof=draft active archived"`
}

type DraftEvaluation struct {
	EvaluationID      int64     `db:"evaluation_id" json:"evaluation_id"`
	PlayerID          int64     `db:"player_id" json:"player_id"`
	FirstName         *string   `db:"first_name" json:"first_name,omitempty"`
	LastName          *string   `db:"last_name" json:"last_name,omitempty"`
	Position          *string   `db:"position" json:"position,omitempty"`
	OverallRating     float64   `db:"overall_rating" json:"overall_rating"`
	OffensiveRating   *float64  `db:"offensive_rating" json:"offensive_rating"`
	DefensiveRating   *float64  `db:"defensive_rating" json:"defensive_rating"`
	AthleticismRating *float64  `db:"athleticism_rating" json:"athleticism_rating"`
	PotentialRating   *float64  `db:"potential_rating" json:"potential_rating"`
	EvaluationType    string    `db:"evaluation_type" json:"evaluation_type"`
	Strengths         *string   `db:"strengths" json:"strengths"`
	Weaknesses        *string   `db:"weaknesses" json:"weaknesses"`
	ScoutNotes        *string   `db:"scout_notes" json:"scout_notes"`
	ProjectedRound    *int      `db:"projected_round" json:"projected_round"`
	ComparisonPlayer  *string   `db:"comparison_player" json:"comparison_player"`
	LastUpdated       time.Time `db:"last_updated" json:"last_updated"`
}

type EvaluationFilter struct {
	EvaluationType *string
	MinRating      *float64
}

// EvaluationInput is shared by create and update; ratings are range-checked
// in the domain so the message names the field.
type EvaluationInput struct {
	PlayerID          *int64   `json:"player_id" validate:"omitempty,gt=0"`
	OverallRating     *float64 `json:"overall_rating"`
	OffensiveRating   *float64 `json:"offensive_rating"`
	DefensiveRating   *float64 `json:"defensive_rating"`
	AthleticismRating *float64 `json:"athleticism_rating"`
	PotentialRating   *float64 `json:"potential_rating"`
	EvaluationType    *string  `json:"evaluation_type" validate:"omitempty,oneof=prospect free_agent trade_target"`
	Strengths         *string  `json:"strengths"`
	Weaknesses        *string  `json:"weaknesses"`
	ScoutNotes        *string  `json:"scout_notes"`
	ProjectedRound    *int     `json:"projected_round" validate:"omitempty,gte=1"`
	ComparisonPlayer  *string  `json:"comparison_player" validate:"omitempty,max=100"`
}

// --------------------------------------------------------------------------
// Auth
// --------------------------------------------------------------------------

type User struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Email     *string   `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	TeamID    *int64    `db:"team_id" json:"team_id"`
	TeamName  *string   `db:"team_name" json:"team_name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UserInput struct {
	Username string  `json:"username" validate:"required,min=1,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Role     string  `json:"role" validate:"required,max=30"`
	TeamID   *int64  `json:"team_id" validate:"omitempty,gt=0"`
}

// --------------------------------------------------------------------------
// Operational metadata
// --------------------------------------------------------------------------

type DataLoad struct {
	LoadID           int64      `db:"load_id" json:"load_id"`
	LoadType         string     `db:"load_type" json:"load_type"`
	Status           string     `db:"status" json:"status"`
	StartedAt        time.Time  `db:"started_at" json:"started_at"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at"`
	RecordsProcessed int        `db:"records_processed" json:"records_processed"`
	RecordsFailed    int        `db:"records_failed" json:"records_failed"`
	ErrorMessage     *string    `db:"error_message" json:"error_message"`
	SourceFile       *string    `db:"source_file" json:"source_file"`
	InitiatedBy      *string    `db:"initiated_by" json:"initiated_by"`
	DurationSeconds  float64    `db:"-" json:"duration_seconds"`
}

type LoadFilter struct {
	Status   *string
	LoadType *string
	Days     int
}

type LoadInput struct {
	LoadType    string  `json:"load_type" validate:"required,max=50"`
	SourceFile  *string `json:"source_file" validate:"omitempty,max=255"`
	InitiatedBy *string `json:"initiated_by" validate:"omitempty,max=100"`
}

type LoadPatch struct {
	Status           *string `json:"status" validate:"omitempty,oneof=pending running completed failed"`
	RecordsProcessed *int    `json:"records_processed" validate:"omitempty,gte=0"`
	RecordsFailed    *int    `json:"records_failed" validate:"omitempty,gte=0"`
	ErrorMessage     *string `json:"error_message"`
}

type ErrorLog struct {
	ErrorID         int64      `db:"error_id" json:"error_id"`
	ErrorType       string     `db:"error_type" json:"error_type"`
	Severity        string     `db:"severity" json:"severity"`
	Module          string     `db:"module" json:"module"`
	ErrorMessage    string     `db:"error_message" json:"error_message"`
	StackTrace      *string    `db:"stack_trace" json:"stack_trace"`
	UserID          *int64     `db:"user_id" json:"user_id"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt      *time.Time `db:"resolved_at" json:"resolved_at"`
	ResolvedBy      *string    `db:"resolved_by" json:"resolved_by"`
	ResolutionNotes *string    `db:"resolution_notes" json:"resolution_notes"`
}

type ErrorLogFilter struct {
	Severity *string
	Module   *string
	Resolved *bool
	Days     int
}

type ErrorLogInput struct {
	ErrorType    string  `json:"error_type" validate:"required,max=50"`
	Severity     string  `json:"severity" validate:"required"`
	Module       string  `json:"module" validate:"required,max=100"`
	ErrorMessage string  `json:"error_message" validate:"required"`
	StackTrace   *string `json:"stack_trace"`
	UserID       *int64  `json:"user_id"`
}

type ResolveInput struct {
	Resolved        *bool   `json:"resolved"`
	ResolvedBy      *string `json:"resolved_by" validate:"omitempty,max=100"`
	ResolutionNotes *string `json:"resolution_notes"`
}

type DataError struct {
	DataErrorID    int64      `db:"data_error_id" json:"data_error_id"`
	ErrorType      string     `db:"error_type" json:"error_type"`
	TableName      string     `db:"table_name" json:"table_name"`
	RecordID       *int64     `db:"record_id" json:"record_id"`
	FieldName      *string    `db:"field_name" json:"field_name"`
	InvalidValue   *string    `db:"invalid_value" json:"invalid_value"`
	ExpectedFormat *string    `db:"expected_format" json:"expected_format"`
	DetectedAt     time.Time  `db:"detected_at" json:"detected_at"`
	ResolvedAt     *time.Time `db:"resolved_at" json:"resolved_at"`
	AutoFixed      bool       `db:"auto_fixed" json:"auto_fixed"`
}

type DataErrorFilter struct {
	ErrorType *string
	TableName *string
	Days      int
}

type DataErrorInput struct {
	ErrorType      string  `json:"error_type" validate:"required,oneof=duplicate missing invalid"`
	TableName      string  `json:"table_name" validate:"required,max=50"`
	RecordID       *int64  `json:"record_id"`
	FieldName      *string `json:"field_name" validate:"omitempty,max=50"`
	InvalidValue   *string `json:"invalid_value"`
	ExpectedFormat *string `json:"expected_format"`
}

// DataErrorSummary counts unresolved errors per table and type.
type DataErrorSummary struct {
	TableName  string `db:"table_name" json:"table_name"`
	ErrorType  string `db:"error_type" json:"error_type"`
	Unresolved int    `db:"unresolved" json:"unresolved"`
}

type CleanupSchedule struct {
	ScheduleID    int64      `db:"schedule_id" json:"schedule_id"`
	CleanupType   string     `db:"cleanup_type" json:"cleanup_type"`
	Frequency     string     `db:"frequency" json:"frequency"`
	NextRun       time.Time  `db:"next_run" json:"next_run"`
	LastRun       *time.Time `db:"last_run" json:"last_run"`
	RetentionDays int        `db:"retention_days" json:"retention_days"`
	IsActive      bool       `db:"is_active" json:"is_active"`
	CreatedBy     string     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type CleanupHistory struct {
	HistoryID      int64      `db:"history_id" json:"history_id"`
	ScheduleID     *int64     `db:"schedule_id" json:"schedule_id"`
	CleanupType    string     `db:"cleanup_type" json:"cleanup_type"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at"`
	RecordsDeleted int        `db:"records_deleted" json:"records_deleted"`
	Status         string     `db:"status" json:"status"`
	ErrorMessage   *string    `db:"error_message" json:"error_message"`
}

type CleanupInput struct {
	CleanupType   string     `json:"cleanup_type" validate:"required,max=50"`
	Frequency     string     `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	RetentionDays int        `json:"retention_days" validate:"required,gt=0"`
	CreatedBy     string     `json:"created_by" validate:"required,max=100"`
	NextRun       *time.Time `json:"next_run"`
}

type CleanupPatch struct {
	Frequency     *string    `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	NextRun       *time.Time `json:"next_run"`
	RetentionDays *int       `json:"retention_days" validate:"omitempty,gt=0"`
	IsActive      *bool      `json:"is_active"`
}

type CleanupHistoryInput struct {
	ScheduleID     *int64  `json:"schedule_id" validate:"omitempty,gt=0"`
	CleanupType    string  `json:"cleanup_type" validate:"required,max=50"`
	RecordsDeleted int     `json:"records_deleted" validate:"gte=0"`
	Status         string  `json:"status" validate:"required,oneof=completed failed"`
	ErrorMessage   *string `json:"error_message"`
}

type ValidationReport struct {
	ValidationID    int64          `db:"validation_id" json:"validation_id"`
	ValidationType  string         `db:"validation_type" json:"validation_type"`
	TableName       string         `db:"table_name" json:"table_name"`
	Status          string         `db:"status" json:"status"`
	TotalRecords    int            `db:"total_records" json:"total_records"`
	ValidRecords    int            `db:"valid_records" json:"valid_records"`
	InvalidRecords  int            `db:"invalid_records" json:"invalid_records"`
	ValidationRules map[string]any `db:"validation_rules" json:"validation_rules"`
	ErrorDetails    *string        `db:"error_details" json:"error_details"`
	RunDate         time.Time      `db:"run_date" json:"run_date"`
	RunBy           string         `db:"run_by" json:"run_by"`
}

type ValidationFilter struct {
	Status *string
	Days   int
}

type ValidationRun struct {
	ValidationType string         `json:"validation_type" validate:"required,max=50"`
	TableName      string         `json:"table_name" validate:"required_without=Tables,max=50"`
	Tables         []string       `json:"tables" validate:"omitempty,dive,required,max=50"`
	RunBy          string         `json:"run_by" validate:"required,max=100"`
	Rules          map[string]any `json:"validation_rules"`
}

// ValidationSummary is passed/warning/failed counts for one table.
type ValidationSummary struct {
	TableName string `db:"table_name" json:"table_name"`
	Passed    int    `db:"passed" json:"passed"`
	Warning   int    `db:"warning" json:"warning"`
	Failed    int    `db:"failed" json:"failed"`
}

type SystemLog struct {
	LogID            int64      `db:"log_id" json:"log_id"`
	LogType          string     `db:"log_type" json:"log_type"`
	ServiceName      *string    `db:"service_name" json:"service_name"`
	Severity         *string    `db:"severity" json:"severity"`
	Message          *string    `db:"message" json:"message"`
	SourceFile       *string    `db:"source_file" json:"source_file"`
	UserID           *int64     `db:"user_id" json:"user_id"`
	RecordsProcessed *int       `db:"records_processed" json:"records_processed"`
	RecordsFailed    *int       `db:"records_failed" json:"records_failed"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt       *time.Time `db:"resolved_at" json:"resolved_at"`
}

type SystemLogFilter struct {
	LogType  *string
	Severity *string
	Days     int
	Limit    int
}

// Health is the /system-health snapshot.
type Health struct {
	Status        string         `json:"status"`
	Database      string         `json:"database"`
	RecentErrors  int            `json:"recent_errors_24h"`
	ActiveLoads   int            `json:"active_data_loads"`
	LastCompleted map[string]any `json:"last_completed_load"`
	EntityCounts  map[string]int `json:"entity_counts"`
	Timestamp     time.Time      `json:"timestamp"`
}

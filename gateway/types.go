package gateway

// Wire types mirror the API's JSON payloads. Timestamps stay strings on the
// wire (ISO-8601 as the server formats them); the SDK does not reinterpret
// them.

// User is a HabitGrid account as returned by the users and friends endpoints.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
	LastLoginAt string `json:"lastLoginAt,omitempty"`
}

// HabitType categorizes a habit.
type HabitType string

const (
	HabitTypeHealth       HabitType = "HEALTH"
	HabitTypeProductivity HabitType = "PRODUCTIVITY"
	HabitTypeLearning     HabitType = "LEARNING"
	HabitTypeSocial       HabitType = "SOCIAL"
	HabitTypeFinance      HabitType = "FINANCE"
	HabitTypeMindfulness  HabitType = "MINDFULNESS"
	HabitTypeCreative     HabitType = "CREATIVE"
	HabitTypeMaintenance  HabitType = "MAINTENANCE"
)

// HabitFrequency is how often a habit is due.
type HabitFrequency string

const (
	FrequencyDaily   HabitFrequency = "DAILY"
	FrequencyWeekly  HabitFrequency = "WEEKLY"
	FrequencyMonthly HabitFrequency = "MONTHLY"
)

// Habit is a tracked habit.
type Habit struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        HabitType      `json:"type"`
	Frequency   HabitFrequency `json:"frequency"`
	TargetValue int            `json:"targetValue"`
	TargetUnit  string         `json:"targetUnit"`
	IsActive    bool           `json:"isActive"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// HabitCompletion records one completion of a habit.
type HabitCompletion struct {
	ID             int64   `json:"id"`
	HabitID        int64   `json:"habitId"`
	CompletionDate string  `json:"completionDate"`
	Value          float64 `json:"value,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// Streak is the server-computed streak state for a habit.
type Streak struct {
	ID                 int64  `json:"id"`
	HabitID            int64  `json:"habitId"`
	CurrentStreak      int    `json:"currentStreak"`
	LongestStreak      int    `json:"longestStreak"`
	LastCompletionDate string `json:"lastCompletionDate,omitempty"`
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationFriendRequest     NotificationType = "FRIEND_REQUEST"
	NotificationFriendAccepted    NotificationType = "FRIEND_ACCEPTED"
	NotificationCompetitionInvite NotificationType = "COMPETITION_INVITE"
	NotificationStreakMilestone   NotificationType = "STREAK_MILESTONE"
	NotificationReminder          NotificationType = "REMINDER"
)

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "UNREAD"
	NotificationRead   NotificationStatus = "READ"
)

// Notification is a message delivered to the signed-in user.
type Notification struct {
	ID        int64              `json:"id"`
	Type      NotificationType   `json:"type"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Status    NotificationStatus `json:"status"`
	CreatedAt string             `json:"createdAt"`
}

// FriendshipStatus is the state of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
	FriendshipDeclined FriendshipStatus = "DECLINED"
)

// Friendship links two users with a request state.
type Friendship struct {
	ID        int64            `json:"id"`
	Requester User             `json:"requester"`
	Addressee User             `json:"addressee"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt string           `json:"createdAt"`
}

// CompetitionType is the scoring mode of a competition.
type CompetitionType string

const (
	CompetitionStreak          CompetitionType = "STREAK"
	CompetitionCompletionCount CompetitionType = "COMPLETION_COUNT"
	CompetitionTimeBased       CompetitionType = "TIME_BASED"
)

// Competition is a scored contest between users.
type Competition struct {
	ID           int64                    `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description,omitempty"`
	Type         CompetitionType          `json:"type"`
	StartDate    string                   `json:"startDate"`
	EndDate      string                   `json:"endDate"`
	IsActive     bool                     `json:"isActive"`
	Participants []CompetitionParticipant `json:"participants"`
}

// CompetitionParticipant is one user's standing in a competition.
type CompetitionParticipant struct {
	ID    int64 `json:"id"`
	User  User  `json:"user"`
	Score int   `json:"score"`
	Rank  int   `json:"rank"`
}

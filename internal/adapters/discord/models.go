package discord

// User is the subset of a Discord user we care about
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name"`
	Avatar        string `json:"avatar"`
}

// Guild is a guild summary as returned by /users/@me/guilds
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Member is a guild member as returned by /guilds/{id}/members/{uid}
type Member struct {
	User  *User    `json:"user"`
	Nick  string   `json:"nick"`
	Roles []string `json:"roles"`
}

// File is an attachment to upload alongside a message
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is the slice of a created message we read back
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

package transfer

// Raw payload shapes returned by the Graph API. Every list endpoint
// wraps its results in a top-level "data" array; only the first page is
// ever decoded (no cursor following).

type GraphIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GraphPicture struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

type GraphFrom struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Picture *GraphPicture `json:"picture,omitempty"`
}

type GraphComment struct {
	ID          string     `json:"id"`
	Message     string     `json:"message"`
	CreatedTime string     `json:"created_time"`
	From        *GraphFrom `json:"from,omitempty"`
	LikeCount   int        `json:"like_count"`
}

type GraphLikes struct {
	Summary struct {
		TotalCount int `json:"total_count"`
	} `json:"summary"`
}

type GraphShares struct {
	Count int `json:"count"`
}

type GraphPost struct {
	ID          string       `json:"id"`
	Message     string       `json:"message"`
	CreatedTime string       `json:"created_time"`
	FullPicture string       `json:"full_picture"`
	Likes       *GraphLikes  `json:"likes,omitempty"`
	Shares      *GraphShares `json:"shares,omitempty"`
	Comments    *struct {
		Data []*GraphComment `json:"data"`
	} `json:"comments,omitempty"`
}

type GraphAccount struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AccessToken string   `json:"access_token"`
	Category    string   `json:"category"`
	Tasks       []string `json:"tasks"`
}

type GraphTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type GraphMessage struct {
	ID          string     `json:"id"`
	Message     string     `json:"message"`
	CreatedTime string     `json:"created_time"`
	From        *GraphFrom `json:"from,omitempty"`
}

type GraphConversation struct {
	ID      string `json:"id"`
	Senders *struct {
		Data []*GraphFrom `json:"data"`
	} `json:"senders,omitempty"`
	Messages *struct {
		Data []*GraphMessage `json:"data"`
	} `json:"messages,omitempty"`
}

type GraphErrorResponse struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

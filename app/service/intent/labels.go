package intent

type Label string

const (
	Greeting      Label = "greeting"
	Elections     Label = "elections"
	Leaders       Label = "leaders"
	Parties       Label = "parties"
	Policies      Label = "policies"
	Scandals      Label = "scandals"
	International Label = "international"
	Economy       Label = "economy"
	Protests      Label = "protests"
	History       Label = "history"
	Media         Label = "media"
	PublicOpinion Label = "public_opinion"
	Farewell      Label = "farewell"
)

// Labels is the fixed label set in matching order.
var Labels = []Label{
	Greeting,
	Elections,
	Leaders,
	Parties,
	Policies,
	Scandals,
	International,
	Economy,
	Protests,
	History,
	Media,
	PublicOpinion,
	Farewell,
}

func (l Label) String() string {
	return string(l)
}

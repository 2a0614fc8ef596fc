package conversation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"politix/app/config"
	"politix/app/service/capability"
	"politix/app/service/entity"
	"politix/app/service/intent"
	"politix/app/service/metrics"
	"politix/app/service/qa"
	"politix/app/service/responses"

	"github.com/samber/do"
)

type Service struct {
	botName string
	out     io.Writer

	table      *responses.Table
	picker     *responses.Picker
	retriever  *qa.Retriever
	classifier intent.Classifier
	extractor  entity.Extractor
	metricsSvc *metrics.Service

	state State
}

type Deps struct {
	BotName    string
	Out        io.Writer
	Table      *responses.Table
	Picker     *responses.Picker
	Retriever  *qa.Retriever
	Classifier intent.Classifier
	Extractor  entity.Extractor
	Metrics    *metrics.Service
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	caps := do.MustInvoke[*capability.Set](di)

	return NewService(Deps{
		BotName:    cfg.Bot.Name,
		Out:        os.Stdout,
		Table:      do.MustInvoke[*responses.Table](di),
		Picker:     responses.NewPicker(nil),
		Retriever:  do.MustInvoke[*qa.Retriever](di),
		Classifier: caps.Classifier,
		Extractor:  caps.Extractor,
		Metrics:    do.MustInvoke[*metrics.Service](di),
	}), nil
}

func NewService(deps Deps) *Service {
	retriever := deps.Retriever
	if retriever == nil {
		retriever = qa.NewRetriever(nil, nil, 0)
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = entity.Unavailable{}
	}

	classifier := deps.Classifier
	if classifier == nil {
		classifier = intent.Substring{}
	}

	return &Service{
		botName:    deps.BotName,
		out:        deps.Out,
		table:      deps.Table,
		picker:     deps.Picker,
		retriever:  retriever,
		classifier: classifier,
		extractor:  extractor,
		metricsSvc: deps.Metrics,
	}
}

// ProcessMessage runs one turn and reports whether the conversation goes on.
func (s *Service) ProcessMessage(ctx context.Context, text string) (Status, error) {
	if strings.TrimSpace(text) == "" {
		return Running, nil
	}

	if answer, ok := s.retriever.Retrieve(ctx, text); ok {
		s.observe(metrics.RouteQA)
		return Running, s.say(" (Q&A)", answer)
	}

	label, recognised := s.classifier.Classify(ctx, text, intent.Labels)

	entities, err := s.extractor.Extract(ctx, text)
	if err != nil {
		slog.Warn("Entity extraction failed", "error", err)
		entities = nil
	}

	slog.Debug("Turn analysed",
		"intent", label,
		"recognised", recognised,
		"entities", len(entities))

	if recognised && label == intent.Farewell {
		reply, err := s.table.Pick(s.picker, intent.Farewell.String())
		if err != nil {
			return Terminated, err
		}

		s.observe(metrics.RouteFarewell)
		return Terminated, s.say("", reply)
	}

	if err = s.reply(label, recognised, entities); err != nil {
		return Running, err
	}

	if len(entities) > 0 {
		if _, err = fmt.Fprintf(s.out, "[NLP] I detected these entities: %s\n", entity.FormatMentions(entities)); err != nil {
			return Running, fmt.Errorf("failed to write output: %w", err)
		}
	}

	return Running, nil
}

func (s *Service) reply(label intent.Label, recognised bool, entities []entity.Entity) error {
	if recognised {
		reply, err := s.table.Pick(s.picker, label.String())
		if err != nil {
			return err
		}

		if len(entities) > 0 {
			reply += fmt.Sprintf(" By the way, you mentioned %s.", entity.FormatMentions(entities))
		}

		s.state.lastIntent = label
		s.observe(metrics.RouteIntent)

		return s.say("", reply)
	}

	if s.state.lastIntent != "" && s.table.Has(s.state.lastIntent.String()) {
		reply, err := s.table.Pick(s.picker, s.state.lastIntent.String())
		if err != nil {
			return err
		}

		s.observe(metrics.RouteContext)
		return s.say(" (context)", reply)
	}

	reply, err := s.table.Pick(s.picker, responses.DefaultKey)
	if err != nil {
		return err
	}

	s.observe(metrics.RouteDefault)
	return s.say("", reply)
}

func (s *Service) say(tag, text string) error {
	if _, err := fmt.Fprintf(s.out, "%s%s: %s\n", s.botName, tag, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (s *Service) observe(route string) {
	if s.metricsSvc != nil {
		s.metricsSvc.ObserveTurn(route)
	}
}

// LastIntent returns the remembered label, empty when nothing was recognised yet.
func (s *Service) LastIntent() intent.Label {
	return s.state.lastIntent
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/assistant"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"github.com/kovilapp/temple-admin/internal/domain/workflow"
)

const greetingText = "Vanakam! How can I assist you with the temple's activities today?"

var (
	// ErrMessageNotFound is returned when no message has the given id
	ErrMessageNotFound = errors.New("message not found")

	// ErrNoPendingAction is returned when the message carries no action,
	// either because none was proposed or because it was already consumed.
	ErrNoPendingAction = errors.New("no pending action on message")
)

// Interpreter turns one user message into a reply and an optional pending
// action. Satisfied by assistant.Engine.
type Interpreter interface {
	Interpret(ctx context.Context, userText string, receipts []*entity.Receipt, staff []*entity.StaffRecord) *assistant.Response
}

// SendOutcome reports a dispatched notification: the appended chat message
// and the deep link handed to the presentation layer.
type SendOutcome struct {
	Message entity.ChatMessage `json:"message"`
	Link    string             `json:"link,omitempty"`
}

// ConversationService is the confirmation workflow: it owns the
// conversation state, holds at most one pending draft decision, and commits
// or discards assistant-proposed actions on explicit operator input. Side
// effects are strictly user-triggered; nothing commits or sends on its own.
type ConversationService interface {
	// State returns a snapshot of the conversation
	State() entity.ConversationState

	// Reset clears the conversation back to the greeting
	Reset()

	// Send interprets one user message and appends the assistant's reply
	Send(ctx context.Context, text string) (entity.ChatMessage, error)

	// Confirm commits the pending draft attached to the message
	Confirm(ctx context.Context, messageID int) (entity.ChatMessage, error)

	// Cancel discards the pending draft attached to the message
	Cancel(ctx context.Context, messageID int) (entity.ChatMessage, error)

	// TriggerSend dispatches the send-kind action attached to the message.
	// The action is consumed first, so a second trigger is a no-op error.
	TriggerSend(ctx context.Context, messageID int) (*SendOutcome, error)
}

type conversationServiceImpl struct {
	mu         sync.Mutex
	state      entity.ConversationState
	machine    workflow.StateMachine
	nextID     int
	interp     Interpreter
	receiptSvc ReceiptService
	staffSvc   StaffService
	notifier   port.Notifier
	logger     Logger
}

// NewConversationService creates a conversation seeded with the greeting
func NewConversationService(
	interp Interpreter,
	receiptSvc ReceiptService,
	staffSvc StaffService,
	notifier port.Notifier,
	logger Logger,
) ConversationService {
	s := &conversationServiceImpl{
		interp:     interp,
		receiptSvc: receiptSvc,
		staffSvc:   staffSvc,
		notifier:   notifier,
		logger:     logger,
	}
	s.reset()
	return s
}

func (s *conversationServiceImpl) reset() {
	s.state = entity.ConversationState{}
	s.machine = workflow.NewConversationMachine()
	s.nextID = 0
	s.append(entity.ChatMessage{Sender: entity.SenderAssistant, Text: greetingText})
}

// append assigns the next message-local id and appends the message
func (s *conversationServiceImpl) append(msg entity.ChatMessage) entity.ChatMessage {
	s.nextID++
	msg.ID = s.nextID
	s.state.Messages = append(s.state.Messages, msg)
	return msg
}

// State returns a snapshot of the conversation
func (s *conversationServiceImpl) State() entity.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Messages = append([]entity.ChatMessage(nil), s.state.Messages...)
	return snapshot
}

// Reset clears the conversation back to the greeting
func (s *conversationServiceImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Send interprets one user message. A draft proposal supersedes any prior
// pending decision: the earlier action is detached and acknowledged before
// the new proposal is appended, so only the newest draft is confirmable.
func (s *conversationServiceImpl) Send(ctx context.Context, text string) (entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.append(entity.ChatMessage{Sender: entity.SenderUser, Text: text})

	receipts, err := s.receiptSvc.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load receipts for assistant", "error", err)
		receipts = nil
	}
	staff, err := s.staffSvc.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load staff for assistant", "error", err)
		staff = nil
	}

	resp := s.interp.Interpret(ctx, text, receipts, staff)

	msg := entity.ChatMessage{
		Sender: entity.SenderAssistant,
		Text:   resp.Text,
		Action: resp.Action,
	}

	if resp.Action != nil && resp.Action.RequiresDecision() {
		if s.state.PendingMessageID != 0 {
			s.supersedePending()
		}
		if err := s.machine.Fire(ctx, workflow.TriggerPropose); err != nil {
			s.logger.Error("Proposal transition rejected", "error", err)
			return entity.ChatMessage{}, err
		}
		msg.RequiresDecision = true
		appended := s.append(msg)
		s.state.PendingMessageID = appended.ID
		return appended, nil
	}

	return s.append(msg), nil
}

// supersedePending detaches the action of the currently pending message and
// acknowledges the cancellation. The caller fires the machine afterwards.
func (s *conversationServiceImpl) supersedePending() {
	for i := range s.state.Messages {
		if s.state.Messages[i].ID == s.state.PendingMessageID {
			s.state.Messages[i].Action = nil
			s.state.Messages[i].RequiresDecision = false
			break
		}
	}
	s.state.PendingMessageID = 0
	s.append(entity.ChatMessage{
		Sender: entity.SenderAssistant,
		Text:   "The earlier pending request has been cancelled.",
	})
	s.logger.Info("Pending action superseded by a newer proposal")
}

// Confirm commits the pending draft. The action is detached before the
// store is called, so a racing cancel (or a second confirm) finds nothing
// to consume.
func (s *conversationServiceImpl) Confirm(ctx context.Context, messageID int) (entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := s.consumeDecision(ctx, messageID, workflow.TriggerConfirm)
	if err != nil {
		return entity.ChatMessage{}, err
	}

	switch action.Kind {
	case entity.ActionReceiptDraft:
		// the receipt keeps its draft status; confirming only authorizes the save
		created, err := s.receiptSvc.Create(ctx, action.ReceiptDraft)
		if err != nil {
			s.logger.Error("Receipt commit failed", "error", err)
			return s.append(entity.ChatMessage{
				Sender: entity.SenderAssistant,
				Text:   "Sorry, there was an error saving the receipt. Please try again.",
			}), nil
		}
		return s.append(entity.ChatMessage{
			Sender: entity.SenderAssistant,
			Text:   fmt.Sprintf("Done. Receipt %s has been created successfully.", created.ReceiptNumber),
		}), nil

	case entity.ActionStaffDraft:
		created, err := s.staffSvc.Create(ctx, action.StaffDraft)
		if err != nil {
			s.logger.Error("Staff commit failed", "error", err)
			return s.append(entity.ChatMessage{
				Sender: entity.SenderAssistant,
				Text:   "Sorry, there was an error saving the staff record. Please try again.",
			}), nil
		}
		return s.append(entity.ChatMessage{
			Sender: entity.SenderAssistant,
			Text:   fmt.Sprintf("Excellent. %q has been added to the temple records.", created.Name),
		}), nil

	default:
		return entity.ChatMessage{}, fmt.Errorf("action kind %s cannot be confirmed", action.Kind)
	}
}

// Cancel discards the pending draft without touching the record store
func (s *conversationServiceImpl) Cancel(ctx context.Context, messageID int) (entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.consumeDecision(ctx, messageID, workflow.TriggerCancel); err != nil {
		return entity.ChatMessage{}, err
	}

	return s.append(entity.ChatMessage{
		Sender: entity.SenderAssistant,
		Text:   "Of course, the request has been cancelled. How else may I assist?",
	}), nil
}

// consumeDecision validates the decision target, fires the workflow trigger
// and detaches the action from the message. The detach happens here,
// synchronously, before any commit work.
func (s *conversationServiceImpl) consumeDecision(ctx context.Context, messageID int, trigger workflow.Trigger) (*entity.Action, error) {
	msg := s.find(messageID)
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.Action == nil || !msg.RequiresDecision || s.state.PendingMessageID != messageID {
		return nil, ErrNoPendingAction
	}

	if err := s.machine.Fire(ctx, trigger); err != nil {
		return nil, err
	}

	action := msg.Action
	msg.Action = nil
	msg.RequiresDecision = false
	s.state.PendingMessageID = 0
	return action, nil
}

// TriggerSend dispatches a send-kind action. The action reference is
// cleared before the dispatcher runs, making a second trigger impossible.
func (s *conversationServiceImpl) TriggerSend(ctx context.Context, messageID int) (*SendOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.find(messageID)
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	if msg.Action == nil || msg.Action.RequiresDecision() {
		return nil, ErrNoPendingAction
	}

	action := msg.Action
	msg.Action = nil

	switch action.Kind {
	case entity.ActionSendConfirmation:
		link, err := s.notifier.SendChatConfirmation(ctx, action.Receipt.MobileNumber, action.Receipt)
		if err != nil {
			s.logger.Error("WhatsApp dispatch failed", "error", err, "receipt_number", action.Receipt.ReceiptNumber)
			appended := s.append(entity.ChatMessage{
				Sender: entity.SenderAssistant,
				Text:   fmt.Sprintf("Sorry, I could not find a valid phone number for receipt %s.", action.Receipt.ReceiptNumber),
			})
			return &SendOutcome{Message: appended}, nil
		}
		appended := s.append(entity.ChatMessage{
			Sender: entity.SenderAssistant,
			Text:   fmt.Sprintf("I have opened WhatsApp to send the confirmation for %s.", action.Receipt.ReceiptNumber),
		})
		return &SendOutcome{Message: appended, Link: link}, nil

	case entity.ActionSendSms:
		link, err := s.notifier.SendSms(ctx, action.MobileNumber, action.Message)
		if err != nil {
			s.logger.Error("SMS dispatch failed", "error", err)
			appended := s.append(entity.ChatMessage{
				Sender: entity.SenderAssistant,
				Text:   fmt.Sprintf("Sorry, %s does not look like a valid mobile number.", action.MobileNumber),
			})
			return &SendOutcome{Message: appended}, nil
		}
		appended := s.append(entity.ChatMessage{
			Sender: entity.SenderAssistant,
			Text:   "Your messaging app has been opened. Review the message and send it.",
		})
		return &SendOutcome{Message: appended, Link: link}, nil

	default:
		return nil, fmt.Errorf("action kind %s cannot be dispatched", action.Kind)
	}
}

func (s *conversationServiceImpl) find(messageID int) *entity.ChatMessage {
	for i := range s.state.Messages {
		if s.state.Messages[i].ID == messageID {
			return &s.state.Messages[i]
		}
	}
	return nil
}

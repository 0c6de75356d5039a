package services

import (
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mybambu/transfer-backend/internal/models"
	"github.com/mybambu/transfer-backend/internal/storage"
	"github.com/mybambu/transfer-backend/internal/utils"
)

// sessionTTL is the inactivity window after which a conversation restarts
const sessionTTL = 30 * time.Minute

// Transfer amount bounds in USD
const (
	minAmount = 1
	maxAmount = 10000
)

var (
	greetingPattern = regexp.MustCompile(`(?i)^\s*(hola|hello|hi|hey|buenos|buenas)\b`)
	sendVerbPattern = regexp.MustCompile(`(?i)\b(send|transfer|enviar|transferir|mandar)\b`)
	ratePattern     = regexp.MustCompile(`(?i)\b(rate|exchange|tasa|cambio)\b`)

	// Command words match anywhere in the message, so "please cancel this"
	// works. "cancel" also covers cancelar/cancelada, "confirm" covers confirmar.
	cancelWords      = []string{"cancel", "stop", "reset", "detener", "reiniciar"}
	helpWords        = []string{"help", "ayuda"}
	affirmativeWords = []string{"confirm", "yes", "send", "enviar"}
)

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// isAffirmative accepts the confirmation words anywhere in the message plus a
// bare Spanish yes ("sí" would match inside too many words as a substring)
func isAffirmative(lower string) bool {
	if containsAny(lower, affirmativeWords) {
		return true
	}
	bare := strings.Trim(lower, " \t.,!¡")
	return bare == "si" || bare == "sí"
}

// DialogueService runs the transfer conversation state machine. One instance
// serves all phone numbers; messages for the same phone are serialized with a
// per-phone lock so concurrent webhook deliveries cannot interleave a session.
type DialogueService struct {
	sessions storage.SessionStore
	store    storage.Store
	sender   MessageSender
	wise     *WiseService
	ai       *OpenAIService
	mode     string // DEMO or PRODUCTION

	locks sync.Map // phone -> *sync.Mutex
}

// NewDialogueService wires the dialogue manager. wise and ai may be nil; the
// flow degrades to demo submissions and static fallback replies.
func NewDialogueService(sessions storage.SessionStore, store storage.Store, sender MessageSender, wise *WiseService, ai *OpenAIService, mode string) *DialogueService {
	return &DialogueService{
		sessions: sessions,
		store:    store,
		sender:   sender,
		wise:     wise,
		ai:       ai,
		mode:     mode,
	}
}

func (d *DialogueService) phoneLock(phone string) *sync.Mutex {
	lock, _ := d.locks.LoadOrStore(phone, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// reply delivers a bot message and records it in the turn's outgoing list
func (d *DialogueService) reply(session *models.Session, out *[]string, text string) {
	session.AddHistory("bot", text)
	*out = append(*out, text)
	if d.sender != nil {
		if err := d.sender.SendText(session.PhoneNumber, text); err != nil {
			log.Printf("❌ Failed to deliver reply to %s: %v", session.PhoneNumber, err)
		}
	}
}

// HandleIncomingMessage processes one inbound WhatsApp message and returns
// the replies that were sent (in order)
func (d *DialogueService) HandleIncomingMessage(phone, text string) []string {
	lock := d.phoneLock(phone)
	lock.Lock()
	defer lock.Unlock()

	session := d.sessions.GetOrCreate(phone)

	// Stale mid-transfer sessions restart silently
	if session.State != models.StateIdle && time.Since(session.LastActivity) > sessionTTL {
		log.Printf("⏰ Session expired for %s, resetting", phone)
		session.ClearTransfer()
	}
	session.LastActivity = time.Now()

	// Language is detected once, on the first message, and sticks for the
	// session - a user switching languages mid-conversation keeps the first one
	if session.Language == "" {
		session.Language = DetectLanguage(text)
	}
	lang := session.Language

	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	session.AddHistory("user", trimmed)

	var out []string

	// Global commands work from any state
	if containsAny(lower, cancelWords) {
		session.ClearTransfer()
		d.reply(session, &out, msgCancelled(lang))
		return out
	}
	if containsAny(lower, helpWords) {
		d.reply(session, &out, msgHelp(lang))
		return out
	}

	switch session.State {
	case models.StateIdle:
		d.handleIdle(session, trimmed, lower, &out)
	case models.StateCollectingAmount:
		d.handleCollectingAmount(session, trimmed, &out)
	case models.StateCollectingCountry:
		d.handleCollectingCountry(session, trimmed, &out)
	case models.StateCollectingRecipient:
		d.handleCollectingRecipient(session, trimmed, &out)
	case models.StateCollectingBankDetails:
		d.handleCollectingBankDetails(session, trimmed, &out)
	case models.StateConfirming:
		d.handleConfirming(session, lower, &out)
	default:
		session.ClearTransfer()
		d.handleIdle(session, trimmed, lower, &out)
	}

	return out
}

// handleIdle interprets a message with no transfer in progress: greeting,
// rate lookup, transfer intent, or the AI fallback for anything else
func (d *DialogueService) handleIdle(session *models.Session, text, lower string, out *[]string) {
	lang := session.Language

	if greetingPattern.MatchString(lower) {
		session.ClearTransfer()
		d.reply(session, out, msgWelcome(lang))
		return
	}

	if ratePattern.MatchString(lower) {
		if country, ok := ExtractCountry(text); ok {
			if corridor, found := CorridorForCountry(country); found {
				d.reply(session, out, msgRate(corridor.Country, corridor.Currency, ExchangeRate(corridor.Currency), lang))
				return
			}
		}
		d.reply(session, out, msgRateWhichCountry(lang))
		return
	}

	amount, hasAmount := ExtractAmount(text)
	country, hasCountry := ExtractCountry(text)

	if sendVerbPattern.MatchString(lower) || hasAmount || hasCountry {
		if hasAmount && (amount < minAmount || amount > maxAmount) {
			session.State = models.StateCollectingAmount
			d.reply(session, out, msgInvalidAmount(lang))
			return
		}

		switch {
		case hasAmount && hasCountry:
			corridor, _ := CorridorForCountry(country)
			session.Amount = amount
			session.Country = corridor.Country
			session.Currency = corridor.Currency
			session.State = models.StateCollectingRecipient
			d.reply(session, out, msgGotAmountAndCountry(amount, corridor.Country, lang))

		case hasAmount:
			session.Amount = amount
			session.State = models.StateCollectingCountry
			d.reply(session, out, msgAskCountry(amount, lang))

		case hasCountry:
			corridor, _ := CorridorForCountry(country)
			session.Country = corridor.Country
			session.Currency = corridor.Currency
			session.State = models.StateCollectingAmount
			d.reply(session, out, msgAskAmount(lang))

		default:
			session.State = models.StateCollectingAmount
			d.reply(session, out, msgAskAmount(lang))
		}
		return
	}

	// Free-form question: hand it to the AI support agent, stay idle
	if d.ai != nil {
		answer, err := d.ai.GenerateFallbackReply(text, FallbackContext{
			PhoneNumber:    session.PhoneNumber,
			Language:       lang,
			SessionStep:    string(session.State),
			RecentMessages: session.RecentMessages(),
			Amount:         session.Amount,
			Country:        session.Country,
			RecipientName:  session.RecipientName,
		})
		if err != nil {
			d.reply(session, out, msgStaticFallback(lang))
			return
		}
		d.reply(session, out, answer)
		return
	}
	d.reply(session, out, msgFallback(lang))
}

func (d *DialogueService) handleCollectingAmount(session *models.Session, text string, out *[]string) {
	lang := session.Language

	amount, ok := ExtractAmount(text)
	if !ok || amount < minAmount || amount > maxAmount {
		d.reply(session, out, msgInvalidAmount(lang))
		return
	}

	session.Amount = amount

	// Country may already be known from the opening message
	if session.Country != "" {
		session.State = models.StateCollectingRecipient
		d.reply(session, out, msgGotAmountAndCountry(amount, session.Country, lang))
		return
	}

	if country, found := ExtractCountry(text); found {
		corridor, _ := CorridorForCountry(country)
		session.Country = corridor.Country
		session.Currency = corridor.Currency
		session.State = models.StateCollectingRecipient
		d.reply(session, out, msgGotAmountAndCountry(amount, corridor.Country, lang))
		return
	}

	session.State = models.StateCollectingCountry
	d.reply(session, out, msgAskCountry(amount, lang))
}

func (d *DialogueService) handleCollectingCountry(session *models.Session, text string, out *[]string) {
	lang := session.Language

	country, ok := ExtractCountry(text)
	if !ok {
		// The destination may have been mentioned in an earlier message
		country, ok = ExtractCountry(session.RecentUserText())
	}
	if !ok {
		d.reply(session, out, msgUnsupportedCountry(lang))
		return
	}

	corridor, _ := CorridorForCountry(country)
	session.Country = corridor.Country
	session.Currency = corridor.Currency
	session.State = models.StateCollectingRecipient
	d.reply(session, out, msgCountryConfirmed(session, lang))
}

func (d *DialogueService) handleCollectingRecipient(session *models.Session, text string, out *[]string) {
	lang := session.Language

	name := strings.TrimSpace(text)
	if len(name) < 3 || len(strings.Fields(name)) < 2 {
		d.reply(session, out, msgInvalidName(lang))
		return
	}

	requirements := BankRequirements(session.Currency)
	if requirements == nil {
		session.ClearTransfer()
		d.reply(session, out, msgUnsupportedCurrency(lang))
		return
	}

	session.RecipientName = name
	session.BankDetails = make(map[string]string)
	session.State = models.StateCollectingBankDetails
	d.reply(session, out, msgBankDetailsPrompt(name, requirements, lang))
}

func (d *DialogueService) handleCollectingBankDetails(session *models.Session, text string, out *[]string) {
	lang := session.Language

	requirements := BankRequirements(session.Currency)
	if requirements == nil {
		session.ClearTransfer()
		d.reply(session, out, msgUnsupportedCurrency(lang))
		return
	}

	session.BankDetails = ExtractBankDetails(text, requirements, session.BankDetails)

	complete, missing := ValidateBankDetails(session.Currency, session.BankDetails)
	if !complete {
		d.reply(session, out, msgMissingFields(missing, lang))
		return
	}

	session.State = models.StateConfirming
	d.reply(session, out, msgConfirmSummary(session, lang))
}

func (d *DialogueService) handleConfirming(session *models.Session, lower string, out *[]string) {
	lang := session.Language

	if !isAffirmative(lower) {
		d.reply(session, out, msgConfirmReprompt(lang))
		return
	}

	d.reply(session, out, msgProcessing(lang))

	if d.mode == "PRODUCTION" && d.wise != nil {
		d.submitProduction(session, out)
	} else {
		d.submitDemo(session, out)
	}

	// Submission attempts are terminal either way
	session.ClearTransfer()
}

// submitDemo simulates a transfer with the indicative rates and records it
func (d *DialogueService) submitDemo(session *models.Session, out *[]string) {
	lang := session.Language
	fee, recipientAmount := EstimateDelivery(session.Amount, session.Currency)

	d.recordTransfer(session, &models.Transfer{
		TransferID:    utils.GenerateSecureID("DEMO"),
		PhoneNumber:   session.PhoneNumber,
		Amount:        session.Amount,
		TargetAmount:  recipientAmount,
		Currency:      session.Currency,
		Country:       session.Country,
		RecipientName: session.RecipientName,
		Rate:          ExchangeRate(session.Currency),
		Fee:           fee,
		Status:        "demo_completed",
		Mode:          "DEMO",
		SubmittedAt:   time.Now(),
	})

	d.reply(session, out, msgTransferDemo(session.Amount, session.Currency, lang))
}

// submitProduction runs the real provider submission
func (d *DialogueService) submitProduction(session *models.Session, out *[]string) {
	lang := session.Language

	result, err := d.wise.SendMoney(SendMoneyParams{
		Amount:           session.Amount,
		RecipientName:    session.RecipientName,
		RecipientCountry: session.Country,
		TargetCurrency:   session.Currency,
		Reference:        "MyBambu transfer",
		BankDetails:      session.BankDetails,
	})
	if err != nil {
		log.Printf("❌ Transfer submission failed for %s: %v", session.PhoneNumber, err)
		d.reply(session, out, msgTransferFailed(err.Error(), lang))
		return
	}

	d.recordTransfer(session, &models.Transfer{
		TransferID:        result.TransferID,
		PhoneNumber:       session.PhoneNumber,
		Amount:            result.Amount,
		TargetAmount:      result.TargetAmount,
		Currency:          session.Currency,
		Country:           session.Country,
		RecipientName:     session.RecipientName,
		Rate:              result.Rate,
		Fee:               result.Fee,
		Status:            result.Status,
		Mode:              "PRODUCTION",
		EstimatedDelivery: result.EstimatedDelivery,
		SubmittedAt:       time.Now(),
	})

	d.reply(session, out, msgTransferSent(result, session.Currency, lang))
}

// recordTransfer persists the transfer record; storage failures are logged,
// never surfaced to the conversation
func (d *DialogueService) recordTransfer(session *models.Session, transfer *models.Transfer) {
	if d.store == nil {
		return
	}
	if _, err := d.store.CreateTransfer(transfer); err != nil {
		log.Printf("❌ Failed to record transfer for %s: %v", session.PhoneNumber, err)
	}
}

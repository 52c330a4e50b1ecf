package jobs

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"investapp/internal/logger"
	"investapp/internal/mailer"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/services"
)

// Price variation states reported by the alert email.
const (
	PriceIncreased = "Increased"
	PriceDecreased = "Decreased"
	PriceUnchanged = "No change"
)

// PriceChange describes how one asset's latest recorded value compares to
// the one before it.
type PriceChange struct {
	AssetName string
	Symbol    string
	Previous  decimal.Decimal
	Current   decimal.Decimal
	State     string
}

// ClassifyPriceChange compares the asset's two most recent history entries.
// Assets with fewer than two entries, or whose latest entry was not recorded
// on the given day, have nothing to report and return nil.
func ClassifyPriceChange(asset *models.Asset, day time.Time) *PriceChange {
	if len(asset.AssetHistories) < 2 {
		return nil
	}

	histories := make([]models.AssetHistory, len(asset.AssetHistories))
	copy(histories, asset.AssetHistories)
	sort.Slice(histories, func(i, j int) bool {
		return histories[i].ValueDate.After(histories[j].ValueDate)
	})

	if !sameDay(histories[0].ValueDate, day) {
		return nil
	}

	current := histories[0].Value
	previous := histories[1].Value

	change := &PriceChange{
		AssetName: asset.Name,
		Symbol:    asset.Symbol,
		Previous:  previous,
		Current:   current,
	}
	switch {
	case current.GreaterThan(previous):
		change.State = PriceIncreased
	case current.LessThan(previous):
		change.State = PriceDecreased
	default:
		change.State = PriceUnchanged
	}
	return change
}

// PriceAlertJob emails every confirmed user a summary of the assets whose
// price moved since the previous recording. Failures are logged and
// swallowed so the next scheduled run is unaffected.
type PriceAlertJob struct {
	assets *services.AssetService
	users  *repository.UserRepository
	sender mailer.Sender
}

// NewPriceAlertJob creates a PriceAlertJob.
func NewPriceAlertJob(assets *services.AssetService, users *repository.UserRepository, sender mailer.Sender) *PriceAlertJob {
	return &PriceAlertJob{assets: assets, users: users, sender: sender}
}

// Name implements Job.
func (j *PriceAlertJob) Name() string { return "price-alert" }

// Run implements Job. Only assets with a value recorded today are
// considered; one aggregate email goes out per run, and assets whose price
// did not move are left out of it.
func (j *PriceAlertJob) Run() error {
	entities := j.assets.GetAllEntitiesWithHistories()
	today := time.Now()

	var changes []PriceChange
	for i := range entities {
		change := ClassifyPriceChange(&entities[i], today)
		if change == nil || change.State == PriceUnchanged {
			continue
		}
		changes = append(changes, *change)
	}
	if len(changes) == 0 {
		logger.Get().Infow("no price changes to report")
		return nil
	}

	emails, err := j.users.ConfirmedEmails()
	if err != nil {
		logger.Get().Errorw("confirmed email lookup failed", "error", err.Error())
		return nil
	}
	if len(emails) == 0 {
		logger.Get().Infow("no confirmed users to notify")
		return nil
	}

	msg := mailer.Message{
		To:       emails,
		Subject:  "Asset price changes",
		HTMLBody: renderPriceAlertBody(changes),
	}
	if err := j.sender.Send(msg); err != nil {
		logger.Get().Errorw("price alert email failed", "error", err.Error())
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func renderPriceAlertBody(changes []PriceChange) string {
	var b strings.Builder
	b.WriteString("<h2>Asset price changes</h2>")
	b.WriteString("<table><tr><th>Asset</th><th>Symbol</th><th>Previous</th><th>Current</th><th>Change</th></tr>")
	for _, c := range changes {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			c.AssetName, c.Symbol, c.Previous.StringFixed(2), c.Current.StringFixed(2), c.State)
	}
	b.WriteString("</table>")
	return b.String()
}

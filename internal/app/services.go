package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"

	"github.com/stockroom/replenish-backend/internal/adapter/docstore"
	notifyadapter "github.com/stockroom/replenish-backend/internal/adapter/notify"
	"github.com/stockroom/replenish-backend/internal/adapter/postgres"
	auditrepo "github.com/stockroom/replenish-backend/internal/adapter/postgres/audit"
	exceptionalrepo "github.com/stockroom/replenish-backend/internal/adapter/postgres/exceptional"
	notificationrepo "github.com/stockroom/replenish-backend/internal/adapter/postgres/notification"
	"github.com/stockroom/replenish-backend/internal/adapter/postgres/purchaseorder"
	requestrepo "github.com/stockroom/replenish-backend/internal/adapter/postgres/request"
	"github.com/stockroom/replenish-backend/internal/adapter/postgres/staff"
	statsrepo "github.com/stockroom/replenish-backend/internal/adapter/postgres/stats"
	"github.com/stockroom/replenish-backend/internal/adapter/postgres/stock"
	supplierrepo "github.com/stockroom/replenish-backend/internal/adapter/postgres/supplier"
	"github.com/stockroom/replenish-backend/internal/config"
	"github.com/stockroom/replenish-backend/internal/service/audit"
	"github.com/stockroom/replenish-backend/internal/service/exceptional"
	"github.com/stockroom/replenish-backend/internal/service/fulfillment"
	"github.com/stockroom/replenish-backend/internal/service/ledger"
	"github.com/stockroom/replenish-backend/internal/service/notify"
	"github.com/stockroom/replenish-backend/internal/service/purchasing"
	"github.com/stockroom/replenish-backend/internal/service/request"
	"github.com/stockroom/replenish-backend/internal/service/stats"
	"github.com/stockroom/replenish-backend/internal/service/supplier"
)

// Services is the wired service graph shared by the server and replenishctl.
type Services struct {
	Requests    *request.Service
	Exceptional *exceptional.Service
	Orders      *purchasing.Service
	Ledger      *ledger.Service
	Audit       *audit.Service
	Notify      *notify.Service
	Suppliers   *supplier.Service
	Stats       *stats.Service

	// NATS is set when the nats driver is enabled; used for readiness.
	NATS *nats.Conn

	closers []func() error
}

// Close releases notification transports. The pool is owned by the caller.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewServices builds every repository and service on top of pool.
func NewServices(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Services, error) {
	svc := &Services{}

	txm := postgres.NewTxManager(pool)

	auditRepo := auditrepo.New(pool)
	stockRepo := stock.New(pool)
	staffRepo := staff.New(pool)
	requestRepo := requestrepo.New(pool)
	exceptionalRepo := exceptionalrepo.New(pool)
	orderRepo := purchaseorder.New(pool)
	supplierRepo := supplierrepo.New(pool)
	notificationRepo := notificationrepo.New(pool)

	dispatcher, err := svc.dispatchers(cfg.Notify, notificationRepo, logger)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	docs, err := docstore.NewFS(cfg.Documents.Root, cfg.Documents.MaxSize)
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	ledgerSvc := ledger.NewService(logger, stockRepo, auditRepo, txm)
	fulfiller := fulfillment.NewService(logger, ledgerSvc, auditRepo, staffRepo)
	notifySvc := notify.NewService(logger, dispatcher, notificationRepo, cfg.Notify.Concurrency)

	svc.Ledger = ledgerSvc
	svc.Notify = notifySvc
	svc.Audit = audit.NewService(logger, auditRepo)
	svc.Suppliers = supplier.NewService(logger, supplierRepo, txm, cfg.Suppliers.ScoreWindow)
	svc.Stats = stats.NewService(logger, statsrepo.New(pool))
	svc.Requests = request.NewService(logger, requestRepo, ledgerSvc, fulfiller, notifySvc, auditRepo, txm)
	svc.Exceptional = exceptional.NewService(logger, exceptionalRepo, orderRepo, fulfiller, notifySvc, auditRepo, txm)
	svc.Orders = purchasing.NewService(logger, purchasing.Deps{
		Orders:      orderRepo,
		Suppliers:   supplierRepo,
		Stock:       ledgerSvc,
		Exceptional: exceptionalRepo,
		Fulfiller:   fulfiller,
		Documents:   docs,
		Notifier:    notifySvc,
		Audit:       auditRepo,
		Tx:          txm,
	})

	return svc, nil
}

// dispatchers connects every enabled notification driver.
func (s *Services) dispatchers(cfg config.NotifyConfig, inbox *notificationrepo.Repo, logger *slog.Logger) (notifyadapter.Multi, error) {
	var out notifyadapter.Multi

	if cfg.Enabled(config.DriverInbox) {
		out = append(out, notifyadapter.NewInbox(inbox))
	}

	if cfg.Enabled(config.DriverNATS) {
		nc, err := notifyadapter.ConnectNATS(cfg.NATSURL, "replenish")
		if err != nil {
			return nil, err
		}
		s.NATS = nc
		s.closers = append(s.closers, func() error { return nc.Drain() })
		out = append(out, notifyadapter.NewNATS(nc, cfg.NATSPrefix))
		logger.Info("nats notifications enabled", slog.String("url", cfg.NATSURL))
	}

	if cfg.Enabled(config.DriverKafka) {
		producer, err := notifyadapter.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaRetries)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, closeProducer(producer))
		out = append(out, notifyadapter.NewKafka(producer, cfg.KafkaTopic))
		logger.Info("kafka notifications enabled", slog.String("topic", cfg.KafkaTopic))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no notification driver enabled")
	}
	return out, nil
}

func closeProducer(p sarama.SyncProducer) func() error {
	return func() error {
		if err := p.Close(); err != nil {
			return fmt.Errorf("close kafka producer: %w", err)
		}
		return nil
	}
}

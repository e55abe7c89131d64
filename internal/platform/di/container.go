// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"net/http"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	// プラットフォーム系
	"nursery/internal/infra/config"
	"nursery/internal/infra/database"
	firestoreinfra "nursery/internal/infra/firestore"
	"nursery/internal/infra/secrets"

	// アウトバウンドアダプタ
	"nursery/internal/adapters/out/db"
	"nursery/internal/adapters/out/device"
	fsrepo "nursery/internal/adapters/out/firestore"
	"nursery/internal/adapters/out/gcs"
	"nursery/internal/adapters/out/mail"

	// アプリケーション層
	"nursery/internal/application/remind"
	"nursery/internal/application/usecase"

	// インバウンドアダプタ
	httpin "nursery/internal/adapters/in/http"
	"nursery/internal/adapters/in/http/handler"
	"nursery/internal/adapters/in/http/middleware"
)

// Container は main.go から使う依存オブジェクトの束。
// main.go を極限まで薄くするのが目的。
type Container struct {
	// 全ルートをまとめた http.Handler
	Handler http.Handler

	// Reminder scheduler; nil のときは通知が構成されていない。
	Scheduler *remind.Scheduler

	sessions  *handler.SessionRegistry
	cleanupFn []func()
}

// Close は Cloud Run 終了時などに呼んで安全にリソースを閉じる。
func (c *Container) Close() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.sessions != nil {
		c.sessions.CloseAll()
	}
	for _, fn := range c.cleanupFn {
		fn()
	}
}

// Build は DIコンテナを初期化して返す。
//   - 外部リソース（Firestore / Firebase / Postgres / GCS / SendGrid）を組み立てる
//   - Repository と Usecase と Handler を全部つなぐ
//
// Firestore は注文・ユーザー・ほしい物・リマインダーの正で、これが
// 無いとサービスとして成立しないため初期化失敗は致命扱い。残りは
// WARN を出して該当機能を落としたまま起動する。
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{sessions: handler.NewSessionRegistry()}

	// ------------------------------------------------------------
	// 1. 外部リソース初期化
	// ------------------------------------------------------------

	fsClient, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	c.cleanupFn = append(c.cleanupFn, func() { _ = fsClient.Close() })

	// Firebase Auth（IDトークン検証用）
	var authClient *middleware.FirebaseAuthClient
	{
		var opts []option.ClientOption
		if cfg.FirestoreCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
		}
		app, appErr := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
		if appErr != nil {
			return nil, fmt.Errorf("init firebase app: %w", appErr)
		}
		authClient, err = app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("init firebase auth: %w", err)
		}
	}

	// カタログDB（Postgres）。落ちていてもカタログ抜きで起動する。
	var catalogDB *database.DB
	if catalogDB, err = database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName); err != nil {
		log.Printf("[di] WARN: catalog db unavailable, products disabled: %v", err)
		catalogDB = nil
	} else {
		c.cleanupFn = append(c.cleanupFn, func() { _ = catalogDB.Close() })
	}

	// 商品画像バケット
	var uploader usecase.ImageUploader
	if cfg.GCSBucket != "" {
		gcsClient, gcsErr := storage.NewClient(ctx)
		if gcsErr != nil {
			log.Printf("[di] WARN: gcs unavailable, image upload disabled: %v", gcsErr)
		} else {
			c.cleanupFn = append(c.cleanupFn, func() { _ = gcsClient.Close() })
			uploader = gcs.NewImageUploader(gcsClient, cfg.GCSBucket)
		}
	}

	// SendGrid APIキー。env に無ければ Secret Manager から解決する。
	apiKey := cfg.SendGridAPIKey
	if apiKey == "" && cfg.SendGridSecretName != "" {
		sm, smErr := secretmanager.NewClient(ctx)
		if smErr != nil {
			log.Printf("[di] WARN: secretmanager unavailable: %v", smErr)
		} else {
			defer sm.Close()
			apiKey, err = secrets.Resolve(ctx, sm, cfg.FirestoreProjectID, cfg.SendGridSecretName)
			if err != nil {
				log.Printf("[di] WARN: sendgrid key resolution failed: %v", err)
				apiKey = ""
			}
		}
	}

	// ------------------------------------------------------------
	// 2. Repository (outbound adapter) を初期化
	// ------------------------------------------------------------

	orderRepo := fsrepo.NewOrderRepositoryFS(fsClient.Client)
	orderWatcher := fsrepo.NewOrderWatcherFS(fsClient.Client)
	userRepo := fsrepo.NewUserRepositoryFS(fsClient.Client)
	wishlistRepo := fsrepo.NewWishlistRepositoryFS(fsClient.Client)
	reminderRepo := fsrepo.NewReminderRepositoryFS(fsClient.Client)

	// メール通知は任意構成
	var mailer *mail.OrderMailer
	if apiKey != "" {
		mailer = mail.NewOrderMailer(mail.NewSendGridClient(apiKey, cfg.MailFrom), userRepo)
	} else {
		log.Printf("[di] WARN: sendgrid not configured, mail disabled")
	}

	// ------------------------------------------------------------
	// 3. Usecase を初期化
	// ------------------------------------------------------------

	var orderUC *usecase.OrderUsecase
	if mailer != nil {
		orderUC = usecase.NewOrderUsecase(orderRepo, userRepo, mailer)
	} else {
		orderUC = usecase.NewOrderUsecase(orderRepo, userRepo, nil)
	}
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo)
	reminderUC := usecase.NewReminderUsecase(reminderRepo)

	var productUC *usecase.ProductUsecase
	if catalogDB != nil {
		productUC = usecase.NewProductUsecase(db.NewProductRepositoryPG(catalogDB.Client), uploader)
	}

	// 水やりリマインダーの定期実行（メールが無ければ動かさない）
	if mailer != nil {
		c.Scheduler = remind.NewScheduler(reminderRepo, mailer)
	}

	// ------------------------------------------------------------
	// 4. Inbound HTTP を初期化
	// ------------------------------------------------------------

	c.Handler = httpin.NewRouter(httpin.RouterDeps{
		OrderUC:         orderUC,
		ProductUC:       productUC,
		WishlistUC:      wishlistUC,
		ReminderUC:      reminderUC,
		OrderWatcher:    orderWatcher,
		FixStore:        device.NewFixStore(),
		Sessions:        c.sessions,
		PublishInterval: cfg.PublishInterval,
		Auth: &middleware.AuthMiddleware{
			FirebaseAuth: authClient,
			UserRepo:     userRepo,
		},
	})

	return c, nil
}

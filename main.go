package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/D13garg/ucs503p-202526odd-alpha/attendance"
	"github.com/D13garg/ucs503p-202526odd-alpha/auth"
	"github.com/D13garg/ucs503p-202526odd-alpha/camera"
	"github.com/D13garg/ucs503p-202526odd-alpha/config"
	"github.com/D13garg/ucs503p-202526odd-alpha/database"
	"github.com/D13garg/ucs503p-202526odd-alpha/handlers"
	"github.com/D13garg/ucs503p-202526odd-alpha/scanner"
	"github.com/D13garg/ucs503p-202526odd-alpha/vision"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "attendance",
		Short: "Barcode and face verification attendance kiosk",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	root.AddCommand(serveCmd(), enrollCmd(), scanCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	return config.Load(configPath)
}

// kiosk is everything the camera-side commands need wired together.
type kiosk struct {
	cfg     config.Config
	db      *database.DB
	faces   *vision.Faces
	cameras *camera.Manager
	service *scanner.Service
}

func buildKiosk(cfg config.Config, sessionOpts ...scanner.SessionOption) (*kiosk, error) {
	db, err := database.Open(cfg.StoreFile, cfg.RosterFile)
	if err != nil {
		return nil, err
	}

	faces, err := vision.NewFaces(cfg.FaceModelsDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	cameras := camera.NewManager(vision.NewOpener(),
		camera.WithIndex(cfg.CameraIndex),
		camera.WithReclaim(camera.ForceReclaim(cfg.CameraDevice)),
	)

	store := db.Embeddings()
	opts := append([]scanner.SessionOption{scanner.WithThreshold(cfg.MatchThreshold)}, sessionOpts...)
	session := scanner.NewSession(store, vision.NewBarcodes(), faces, opts...)
	enroller := scanner.NewEnroller(faces)

	return &kiosk{
		cfg:     cfg,
		db:      db,
		faces:   faces,
		cameras: cameras,
		service: scanner.NewService(cameras, session, enroller, store),
	}, nil
}

func (k *kiosk) close() {
	k.faces.Close()
	k.db.Close()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the kiosk HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			live := handlers.NewLiveFeed(cfg.AllowedOrigins)
			k, err := buildKiosk(cfg, scanner.WithObserver(live))
			if err != nil {
				return err
			}
			defer k.close()

			slots := config.LoadSlots(cfg.SlotsFile)
			groups := config.LoadGroups(cfg.GroupsFile)
			tokens := auth.NewTokenStore(config.AdminPassword())
			passkeys, err := auth.NewPasskeys("localhost", cfg.AllowedOrigins, k.db, tokens)
			if err != nil {
				return err
			}
			api := handlers.NewAPI(cfg, k.service, k.db, attendance.NewLog(cfg.AttendanceDir),
				slots, groups, tokens)

			gin.SetMode(gin.ReleaseMode)
			router := gin.Default()

			router.GET("/", api.Home)
			router.GET("/api/slots", api.Slots)
			router.POST("/api/enroll", api.Enroll)
			router.POST("/api/scan", api.Scan)
			router.GET("/api/scan/live", live.Handle)

			router.POST("/api/admin/login", api.AdminLogin)
			router.POST("/api/admin/passkey/register/begin", tokens.Middleware(), passkeys.BeginRegistration)
			router.POST("/api/admin/passkey/register/finish", tokens.Middleware(), passkeys.FinishRegistration)
			router.POST("/api/admin/passkey/login/begin", passkeys.BeginLogin)
			router.POST("/api/admin/passkey/login/finish", passkeys.FinishLogin)

			admin := router.Group("/api/admin", tokens.Middleware())
			admin.GET("/active_slot", api.GetActiveSlot)
			admin.POST("/set_slot", api.SetSlot)
			admin.GET("/attendance", api.Attendance)

			handler := cors.New(cors.Options{
				AllowedOrigins:   cfg.AllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost},
				AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Admin-Username"},
				AllowCredentials: true,
			}).Handler(router)

			slog.Info("listening", "addr", cfg.ListenAddr)
			return http.ListenAndServe(cfg.ListenAddr, handler)
		},
	}
}

func enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <roll-number>",
		Short: "Capture a face embedding for one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			k, err := buildKiosk(cfg)
			if err != nil {
				return err
			}
			defer k.close()

			ctx, stop := signalContext()
			defer stop()

			timeout := time.Duration(cfg.EnrollTimeoutSeconds) * time.Second
			if err := k.service.Enroll(ctx, args[0], timeout); err != nil {
				return err
			}
			fmt.Printf("enrolled %s\n", args[0])
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [slot-id]",
		Short: "Run one verification session and print the outcome",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			k, err := buildKiosk(cfg)
			if err != nil {
				return err
			}
			defer k.close()

			var expected []string
			if len(args) == 1 {
				slots := config.LoadSlots(cfg.SlotsFile)
				slot, ok := config.FindSlot(slots, args[0])
				if !ok {
					return fmt.Errorf("unknown slot %q", args[0])
				}
				expected = slot.Students
			}

			ctx, stop := signalContext()
			defer stop()

			timeout := time.Duration(cfg.ScanTimeoutSeconds) * time.Second
			outcome := k.service.ScanOnce(ctx, expected, timeout)
			return json.NewEncoder(os.Stdout).Encode(outcome)
		},
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

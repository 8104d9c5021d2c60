package cli

import (
	"context"

	"github.com/campus-lab/coursepath/pkg/cli/config"
	"github.com/campus-lab/coursepath/pkg/usecase"
	"github.com/campus-lab/coursepath/pkg/utils/logging"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// cmdProvision pre-creates the assistant for a (university, major) pair so
// the first student of a term does not pay the provisioning latency.
func cmdProvision() *cli.Command {
	var universityID string
	var majorID string
	var appCfg config.App
	var repoCfg config.Repository
	var openaiCfg config.OpenAI

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "university",
			Usage:       "University ID from the app config (required)",
			Required:    true,
			Destination: &universityID,
		},
		&cli.StringFlag{
			Name:        "major",
			Usage:       "Major ID from the app config (required)",
			Required:    true,
			Destination: &majorID,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)

	return &cli.Command{
		Name:    "provision",
		Aliases: []string{"p"},
		Usage:   "Pre-create the assistant for a university/major pair",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			universities, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			university, err := universities.Get(universityID)
			if err != nil {
				return goerr.Wrap(err, "university not in app config",
					goerr.V("universityID", universityID))
			}
			majorName, ok := university.MajorName(majorID)
			if !ok {
				return goerr.New("major not in app config",
					goerr.V("universityID", universityID),
					goerr.V("majorID", majorID))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			assistantSvc, err := openaiCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure assistant service")
			}

			uc := usecase.New(repo, assistantSvc, universities)

			assistantID, err := uc.Registry.GetOrCreate(ctx, universityID, majorID)
			if err != nil {
				return goerr.Wrap(err, "failed to provision assistant")
			}

			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)

			bold.Printf("%s — %s\n", university.Name, majorName)
			green.Printf("assistant ready: %s\n", assistantID)

			return nil
		},
	}
}

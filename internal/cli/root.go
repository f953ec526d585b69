// Package cli wires the passgen command line onto the strength and
// generator packages.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"passgen/generator"
	"passgen/internal/logging"
	"passgen/strength"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const version = "1.0.0"

const (
	flagLength    = "length"
	flagDigits    = "digits"
	flagLowercase = "lowercase"
	flagSpecial   = "special"
	flagUppercase = "uppercase"
	flagCount     = "count"
	flagSeed      = "seed"
	flagLogLevel  = "log-level"
	flagConfig    = "config"
)

// generationFlags conflict with a password argument.
var generationFlags = []string{
	flagLength, flagDigits, flagLowercase, flagSpecial, flagUppercase,
	flagCount, flagSeed,
}

// toggleFlags select explicit generation options when any is set.
var toggleFlags = []string{
	flagLength, flagDigits, flagLowercase, flagSpecial, flagUppercase,
}

var log = logging.WithSubsys("cli")

type runner struct {
	viper   *viper.Viper
	cfgFile string
}

// NewRootCmd builds the passgen command with its own flag and config state.
func NewRootCmd() *cobra.Command {
	r := &runner{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "passgen [password]",
		Short: "Generates and checks passwords",
		Long: `passgen rates the strength of the given password, or generates a random
one when no password is given. Generation options cannot be combined with
a password to check.`,
		Version:           version,
		Args:              cobra.MatchAll(cobra.MaximumNArgs(1), checkConflicts),
		PersistentPreRunE: r.initConfig,
		RunE:              r.run,
	}

	flags := cmd.Flags()
	flags.StringP(flagLength, "e", "", "Length of the generated password")
	flags.BoolP(flagDigits, "d", false, "Should the password contain digits")
	flags.BoolP(flagLowercase, "l", false, "Should the password contain lowercase letters")
	flags.BoolP(flagSpecial, "s", false, "Should the password contain special characters")
	flags.BoolP(flagUppercase, "u", false, "Should the password contain uppercase letters")
	flags.IntP(flagCount, "c", 1, "Number of passwords to generate")
	flags.Uint64(flagSeed, 0, "Seed for reproducible output (0 uses crypto/rand)")
	flags.String(flagLogLevel, "warn", "log level")
	flags.StringVar(&r.cfgFile, flagConfig, "", "optional config file")

	for _, name := range []string{flagCount, flagSeed, flagLogLevel} {
		if err := r.viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
	return cmd
}

// Execute runs the root command against os.Args. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads the optional config file and sets up logging.
func (r *runner) initConfig(cmd *cobra.Command, _ []string) error {
	if r.cfgFile != "" {
		r.viper.SetConfigFile(r.cfgFile)
		if err := r.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", r.cfgFile, err)
		}
	}
	logging.Setup(r.viper.GetString(flagLogLevel), cmd.ErrOrStderr())
	if r.cfgFile != "" {
		log.Debugf("Using config file: %s", r.viper.ConfigFileUsed())
	}
	return nil
}

func checkConflicts(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if name := firstChanged(cmd.Flags(), generationFlags); name != "" {
		return fmt.Errorf("the password argument cannot be used with --%s", name)
	}
	return nil
}

func firstChanged(flags *pflag.FlagSet, names []string) string {
	for _, name := range names {
		if flags.Changed(name) {
			return name
		}
	}
	return ""
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 1 {
		checkPassword(out, args[0])
		return nil
	}
	return r.generate(cmd.Flags(), out)
}

func checkPassword(out io.Writer, password string) {
	level := strength.Check(password)
	log.WithField("points", strength.Points(password)).Debugf("Classified password as %s", level)
	fmt.Fprintf(out, "%s is %s\n", password, level)
}

func (r *runner) generate(flags *pflag.FlagSet, out io.Writer) error {
	src := r.source()
	count := r.viper.GetInt(flagCount)
	if count < 1 {
		count = 1
	}

	if firstChanged(flags, toggleFlags) == "" {
		log.Debugf("Generating %d password(s) with default options", count)
		for i := 0; i < count; i++ {
			fmt.Fprintln(out, generator.GenerateDefault(src))
		}
		return nil
	}

	opts, ok := optionsFromFlags(flags, out)
	if !ok {
		return nil
	}
	log.WithField("charset-size", len(opts.CharacterSet())).
		Debugf("Generating %d password(s) of length %d", count, opts.Length)

	for i := 0; i < count; i++ {
		pw, err := generator.Generate(opts, src)
		if errors.Is(err, generator.ErrEmptyCharacterSet) {
			log.WithError(err).Debug("Nothing to draw from")
			fmt.Fprintln(out, "Failed to generate password")
			return nil
		}
		if err != nil {
			log.WithError(err).Errorln("Failed to generate password")
			return err
		}
		fmt.Fprintln(out, pw)
	}
	return nil
}

// optionsFromFlags turns the set toggles into generator options. Unset
// toggles are false. It reports false after printing a message when the
// length does not parse.
func optionsFromFlags(flags *pflag.FlagSet, out io.Writer) (generator.Options, bool) {
	digits, _ := flags.GetBool(flagDigits)
	lower, _ := flags.GetBool(flagLowercase)
	special, _ := flags.GetBool(flagSpecial)
	upper, _ := flags.GetBool(flagUppercase)

	if !flags.Changed(flagLength) {
		return generator.WithDefaultLength(digits, lower, special, upper), true
	}

	raw, _ := flags.GetString(flagLength)
	length, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		log.WithError(err).Debug("Rejected length")
		fmt.Fprintf(out, "Length should be a positive number, instead got %s\n", raw)
		return generator.Options{}, false
	}
	return generator.NewOptions(int(length), digits, lower, special, upper), true
}

func (r *runner) source() generator.RandomSource {
	if seed := r.viper.GetUint64(flagSeed); seed != 0 {
		log.Debugf("Using seeded source %d", seed)
		return generator.NewSeededSource(seed)
	}
	return generator.NewCryptoSource()
}

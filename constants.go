package main

import "regexp"

// Defaults for the command line
const (
	DefaultOutput     = "updated-beati.xml"
	DefaultPriorDist  = "exponential"
	DefaultParameter1 = 1.0
	DefaultParameter2 = 2.0
	DefaultParametero = 0.0
	DefaultTime       = TimePresent

	TimePresent = "present"
	TimePast    = "past"

	RunIDFormat = "tip-priors-%s"
)

// Anchor substrings marking the insertion points in a BEAUti file
const (
	PriorAnchor    = `<distribution id="prior" spec="util.CompoundDistribution">`
	LoggerAnchor   = `<logger id="tracelog"`
	RunCloseAnchor = `</run>`
)

// Environment variables read by the optional backends
const (
	EnvMailgunDomain = "MAILGUN_DOMAIN"
	EnvMailgunAPIKey = "MAILGUN_API_KEY"
	EnvMailgunSender = "MAILGUN_SENDER"

	EnvS3Region    = "TIPPRIORS_S3_REGION"
	EnvS3Endpoint  = "TIPPRIORS_S3_ENDPOINT"
	EnvS3PathStyle = "TIPPRIORS_S3_PATH_STYLE"
)

var (
	treeIDPattern = regexp.MustCompile(`<tree id="([\w:.-]+)"`)
	taxonPattern  = regexp.MustCompile(`([\w\-]*)=`)

	// DateSectionPatterns maps a time direction to the trait section holding
	// the tip dates
	DateSectionPatterns = map[string]*regexp.Regexp{
		TimePresent: regexp.MustCompile(`traitname="date-backward">\s*([\w=.\-\s,]*)<`),
		TimePast:    regexp.MustCompile(`traitname="date-forward">\s*([\w=.\-\s,]*)<`),
	}

	// TimeDescriptions are shown in the run summary
	TimeDescriptions = map[string]string{
		TimePresent: "time before the present",
		TimePast:    "since some time in the past",
	}
)

package attr

// InputFlag is a termios input mode (c_iflag)
type InputFlag uint8

// Input flags
const (
	IGNBRK  InputFlag = iota // ignore BREAK condition
	BRKINT                   // map BREAK to SIGINTR
	IGNPAR                   // ignore (discard) parity errors
	PARMRK                   // mark parity and framing errors
	INPCK                    // enable checking of parity errors
	ISTRIP                   // strip 8th bit off chars
	INLCR                    // map NL into CR
	IGNCR                    // ignore CR
	ICRNL                    // map CR to NL
	IXON                     // enable output flow control
	IXOFF                    // enable input flow control
	IXANY                    // any char will restart after stop
	IMAXBEL                  // ring bell on input queue full
	IUTF8                    // maintain state for UTF-8 VERASE
	numInputFlags
)

// OutputFlag is a termios output mode (c_oflag)
type OutputFlag uint8

// Output flags
const (
	OPOST  OutputFlag = iota // enable following output processing
	ONLCR                    // map NL to CR-NL
	OXTABS                   // expand tabs to spaces
	ONOEOT                   // discard EOT's (^D) on output
	OCRNL                    // map CR to NL on output
	ONOCR                    // no CR output at column 0
	ONLRET                   // NL performs CR function
	OFILL                    // use fill characters for delay
	NLDLY                    // \n delay
	TABDLY                   // horizontal tab delay
	CRDLY                    // \r delay
	FFDLY                    // form feed delay
	BSDLY                    // \b delay
	VTDLY                    // vertical tab delay
	OFDEL                    // fill is DEL, else NUL
	numOutputFlags
)

// ControlFlag is a termios control mode (c_cflag)
type ControlFlag uint8

// Control flags
const (
	CIGNORE    ControlFlag = iota // ignore control flags
	CS5                           // 5 bits (pseudo)
	CS6                           // 6 bits
	CS7                           // 7 bits
	CS8                           // 8 bits
	CSTOPB                        // send 2 stop bits
	CREAD                         // enable receiver
	PARENB                        // parity enable
	PARODD                        // odd parity, else even
	HUPCL                         // hang up on last close
	CLOCAL                        // ignore modem status lines
	CCTS_OFLOW                    // CTS flow control of output
	CRTS_IFLOW                    // RTS flow control of input
	CDTR_IFLOW                    // DTR flow control of input
	CDSR_OFLOW                    // DSR flow control of output
	CCAR_OFLOW                    // DCD flow control of output
	numControlFlags
)

// LocalFlag is a termios local mode (c_lflag)
type LocalFlag uint8

// Local flags
const (
	ECHOKE     LocalFlag = iota // visual erase for line kill
	ECHOE                       // visually erase chars
	ECHOK                       // echo NL after line kill
	ECHO                        // enable echoing
	ECHONL                      // echo NL even if ECHO is off
	ECHOPRT                     // visual erase mode for hardcopy
	ECHOCTL                     // echo control chars as ^(Char)
	ISIG                        // enable signals INTR, QUIT, [D]SUSP
	ICANON                      // canonicalize input lines
	ALTWERASE                   // use alternate WERASE algorithm
	IEXTEN                      // enable DISCARD and LNEXT
	EXTPROC                     // external processing
	TOSTOP                      // stop background jobs from output
	FLUSHO                      // output being flushed (state)
	NOKERNINFO                  // no kernel output from VSTATUS
	PENDIN                      // retype pending input (state)
	NOFLSH                      // don't flush after interrupt
	numLocalFlags
)

// ControlChar is a role in the termios control character table (c_cc)
type ControlChar uint8

// Control character roles
const (
	VEOF     ControlChar = iota // ICANON
	VEOL                        // ICANON
	VEOL2                       // ICANON together with IEXTEN
	VERASE                      // ICANON
	VWERASE                     // ICANON together with IEXTEN
	VKILL                       // ICANON
	VREPRINT                    // ICANON together with IEXTEN
	VINTR                       // ISIG
	VQUIT                       // ISIG
	VSUSP                       // ISIG
	VDSUSP                      // ISIG together with IEXTEN
	VSTART                      // IXON, IXOFF
	VSTOP                       // IXON, IXOFF
	VLNEXT                      // IEXTEN
	VDISCARD                    // IEXTEN
	VMIN                        // !ICANON
	VTIME                       // !ICANON
	VSTATUS                     // ICANON together with IEXTEN
	numControlChars
)

var inputNames = [...]string{
	IGNBRK: "ignbrk", BRKINT: "brkint", IGNPAR: "ignpar", PARMRK: "parmrk",
	INPCK: "inpck", ISTRIP: "istrip", INLCR: "inlcr", IGNCR: "igncr",
	ICRNL: "icrnl", IXON: "ixon", IXOFF: "ixoff", IXANY: "ixany",
	IMAXBEL: "imaxbel", IUTF8: "iutf8",
}

var outputNames = [...]string{
	OPOST: "opost", ONLCR: "onlcr", OXTABS: "oxtabs", ONOEOT: "onoeot",
	OCRNL: "ocrnl", ONOCR: "onocr", ONLRET: "onlret", OFILL: "ofill",
	NLDLY: "nldly", TABDLY: "tabdly", CRDLY: "crdly", FFDLY: "ffdly",
	BSDLY: "bsdly", VTDLY: "vtdly", OFDEL: "ofdel",
}

var controlNames = [...]string{
	CIGNORE: "cignore", CS5: "cs5", CS6: "cs6", CS7: "cs7", CS8: "cs8",
	CSTOPB: "cstopb", CREAD: "cread", PARENB: "parenb", PARODD: "parodd",
	HUPCL: "hupcl", CLOCAL: "clocal", CCTS_OFLOW: "ccts_oflow",
	CRTS_IFLOW: "crts_iflow", CDTR_IFLOW: "cdtr_iflow",
	CDSR_OFLOW: "cdsr_oflow", CCAR_OFLOW: "ccar_oflow",
}

var localNames = [...]string{
	ECHOKE: "echoke", ECHOE: "echoe", ECHOK: "echok", ECHO: "echo",
	ECHONL: "echonl", ECHOPRT: "echoprt", ECHOCTL: "echoctl", ISIG: "isig",
	ICANON: "icanon", ALTWERASE: "altwerase", IEXTEN: "iexten",
	EXTPROC: "extproc", TOSTOP: "tostop", FLUSHO: "flusho",
	NOKERNINFO: "nokerninfo", PENDIN: "pendin", NOFLSH: "noflsh",
}

var controlCharNames = [...]string{
	VEOF: "veof", VEOL: "veol", VEOL2: "veol2", VERASE: "verase",
	VWERASE: "vwerase", VKILL: "vkill", VREPRINT: "vreprint", VINTR: "vintr",
	VQUIT: "vquit", VSUSP: "vsusp", VDSUSP: "vdsusp", VSTART: "vstart",
	VSTOP: "vstop", VLNEXT: "vlnext", VDISCARD: "vdiscard", VMIN: "vmin",
	VTIME: "vtime", VSTATUS: "vstatus",
}

func (f InputFlag) String() string   { return lookupName(inputNames[:], int(f)) }
func (f OutputFlag) String() string  { return lookupName(outputNames[:], int(f)) }
func (f ControlFlag) String() string { return lookupName(controlNames[:], int(f)) }
func (f LocalFlag) String() string   { return lookupName(localNames[:], int(f)) }
func (c ControlChar) String() string { return lookupName(controlCharNames[:], int(c)) }

func lookupName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// InputFlags lists every input flag in enumeration order
func InputFlags() []InputFlag { return enumerate[InputFlag](numInputFlags) }

// OutputFlags lists every output flag in enumeration order
func OutputFlags() []OutputFlag { return enumerate[OutputFlag](numOutputFlags) }

// ControlFlags lists every control flag in enumeration order
func ControlFlags() []ControlFlag { return enumerate[ControlFlag](numControlFlags) }

// LocalFlags lists every local flag in enumeration order
func LocalFlags() []LocalFlag { return enumerate[LocalFlag](numLocalFlags) }

// ControlChars lists every control character role in enumeration order
func ControlChars() []ControlChar { return enumerate[ControlChar](numControlChars) }

func enumerate[F ~uint8](n F) []F {
	out := make([]F, 0, int(n))
	for f := F(0); f < n; f++ {
		out = append(out, f)
	}
	return out
}

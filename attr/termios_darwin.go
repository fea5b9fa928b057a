//go:build darwin

package attr

import (
	"golang.org/x/sys/unix"
)

type tcflag = uint64

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETA
)

var inputBits = [numInputFlags]tcflag{
	IGNBRK:  unix.IGNBRK,
	BRKINT:  unix.BRKINT,
	IGNPAR:  unix.IGNPAR,
	PARMRK:  unix.PARMRK,
	INPCK:   unix.INPCK,
	ISTRIP:  unix.ISTRIP,
	INLCR:   unix.INLCR,
	IGNCR:   unix.IGNCR,
	ICRNL:   unix.ICRNL,
	IXON:    unix.IXON,
	IXOFF:   unix.IXOFF,
	IXANY:   unix.IXANY,
	IMAXBEL: unix.IMAXBEL,
	IUTF8:   unix.IUTF8,
}

var outputBits = [numOutputFlags]tcflag{
	OPOST:  unix.OPOST,
	ONLCR:  unix.ONLCR,
	OXTABS: unix.OXTABS,
	ONOEOT: unix.ONOEOT,
	OCRNL:  unix.OCRNL,
	ONOCR:  unix.ONOCR,
	ONLRET: unix.ONLRET,
	OFILL:  unix.OFILL,
	NLDLY:  unix.NLDLY,
	TABDLY: unix.TABDLY,
	CRDLY:  unix.CRDLY,
	FFDLY:  unix.FFDLY,
	BSDLY:  unix.BSDLY,
	VTDLY:  unix.VTDLY,
	OFDEL:  unix.OFDEL,
}

var controlBits = [numControlFlags]tcflag{
	CIGNORE:    unix.CIGNORE,
	CSTOPB:     unix.CSTOPB,
	CREAD:      unix.CREAD,
	PARENB:     unix.PARENB,
	PARODD:     unix.PARODD,
	HUPCL:      unix.HUPCL,
	CLOCAL:     unix.CLOCAL,
	CCTS_OFLOW: unix.CCTS_OFLOW,
	CRTS_IFLOW: unix.CRTS_IFLOW,
	CDTR_IFLOW: unix.CDTR_IFLOW,
	CDSR_OFLOW: unix.CDSR_OFLOW,
	CCAR_OFLOW: unix.CCAR_OFLOW,
}

var localBits = [numLocalFlags]tcflag{
	ECHOKE:     unix.ECHOKE,
	ECHOE:      unix.ECHOE,
	ECHOK:      unix.ECHOK,
	ECHO:       unix.ECHO,
	ECHONL:     unix.ECHONL,
	ECHOPRT:    unix.ECHOPRT,
	ECHOCTL:    unix.ECHOCTL,
	ISIG:       unix.ISIG,
	ICANON:     unix.ICANON,
	ALTWERASE:  unix.ALTWERASE,
	IEXTEN:     unix.IEXTEN,
	EXTPROC:    unix.EXTPROC,
	TOSTOP:     unix.TOSTOP,
	FLUSHO:     unix.FLUSHO,
	NOKERNINFO: unix.NOKERNINFO,
	PENDIN:     unix.PENDIN,
	NOFLSH:     unix.NOFLSH,
}

var ccIndex = [numControlChars]int{
	VEOF:     unix.VEOF,
	VEOL:     unix.VEOL,
	VEOL2:    unix.VEOL2,
	VERASE:   unix.VERASE,
	VWERASE:  unix.VWERASE,
	VKILL:    unix.VKILL,
	VREPRINT: unix.VREPRINT,
	VINTR:    unix.VINTR,
	VQUIT:    unix.VQUIT,
	VSUSP:    unix.VSUSP,
	VDSUSP:   unix.VDSUSP,
	VSTART:   unix.VSTART,
	VSTOP:    unix.VSTOP,
	VLNEXT:   unix.VLNEXT,
	VDISCARD: unix.VDISCARD,
	VMIN:     unix.VMIN,
	VTIME:    unix.VTIME,
	VSTATUS:  unix.VSTATUS,
}

package premailer_test

import (
	"fmt"
	"strings"

	"github.com/zostay/go-email-premailer/message"
	"github.com/zostay/go-email-premailer/premailer"
)

func ExampleHook_DeliveringMessage() {
	msg, err := message.Parse(strings.NewReader(
		"Subject: Welcome\n" +
			"Content-Type: text/html\n" +
			"\n" +
			"<style>p{color:red}</style><p>Welcome aboard</p>\n",
	))
	if err != nil {
		panic(err)
	}

	h := premailer.New()
	msg, err = h.DeliveringMessage(msg)
	if err != nil {
		panic(err)
	}

	for _, part := range msg.GetParts() {
		mt, _ := part.GetHeader().GetMediaType()
		fmt.Println(mt)
	}
	// Output:
	// text/plain
	// text/html
}

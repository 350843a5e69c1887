package commands

import (
	"fmt"

	"github.com/onepay-ir/onepay-client/reservation"
)

// consoleNavigator is the CLI's browsing context: it prints the target instead
// of driving a browser.
type consoleNavigator struct{}

func (*consoleNavigator) ToLogin() {
	fmt.Println("برای رزرو ابتدا وارد شوید: onepay login")
}

func (*consoleNavigator) ToPayment(url string) {
	fmt.Println("در حال انتقال به درگاه پرداخت:")
	fmt.Println(url)
}

var _ reservation.Navigator = (*consoleNavigator)(nil)

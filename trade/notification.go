package trade

import "world-sync/domain"

const notificationTitle = "inventory.trading.notification.title"

var (
	otherNotOffering = domain.Notification{
		Kind:    domain.NotificationWarning,
		Title:   notificationTitle,
		Message: "inventory.trading.warning.other_not_offering",
	}
	commitError = domain.Notification{
		Kind:    domain.NotificationError,
		Title:   notificationTitle,
		Message: "inventory.trading.notification.commiterror.info",
	}
	otherCancelled = domain.Notification{
		Kind:    domain.NotificationDefault,
		Title:   notificationTitle,
		Message: "inventory.trading.info.closed",
	}
	alreadyOpen = domain.Notification{
		Kind:    domain.NotificationDefault,
		Title:   notificationTitle,
		Message: "inventory.trading.info.already_open",
	}
	otherDisabled = domain.Notification{
		Kind:    domain.NotificationDefault,
		Title:   notificationTitle,
		Message: "inventory.trading.warning.others_account_disabled",
	}
	youNotAllowed = domain.Notification{
		Kind:    domain.NotificationDefault,
		Title:   notificationTitle,
		Message: "inventory.trading.warning.own_account_disabled",
	}
)

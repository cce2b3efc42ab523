package notification

import "fmt"

func reminderEmailTemplate(message, appURL string) (subject, html string) {
	subject = "TrackFlow Daily Reminder"
	html = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #8b5cf6, #06b6d4); padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">TrackFlow</h1>
  </div>
  <div style="padding: 20px; background: #f8fafc;">
    <h2 style="color: #1e293b;">Daily Activity Reminder</h2>
    <p style="color: #475569; font-size: 16px;">%s</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s/log" style="background: linear-gradient(135deg, #8b5cf6, #06b6d4); color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; display: inline-block;">Log Your Activities</a>
    </div>
    <p style="color: #64748b; font-size: 14px;">Keep up the great work! Consistency is key to building lasting habits.</p>
  </div>
  <div style="padding: 20px; text-align: center; color: #94a3b8; font-size: 12px;">
    <p>You're receiving this because you subscribed to TrackFlow notifications.</p>
    <p><a href="%s/settings" style="color: #8b5cf6;">Manage your notification preferences</a></p>
  </div>
</div>`, message, appURL, appURL)
	return subject, html
}

func dailyReminderEmailTemplate(appURL string) (subject, html string) {
	subject = "🔥 TrackFlow Daily Reminder - Keep Your Streak Going!"
	html = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #8b5cf6, #06b6d4); padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">TrackFlow</h1>
    <p style="color: white; margin: 10px 0 0 0;">Daily Activity Tracker</p>
  </div>
  <div style="padding: 20px; background: #f8fafc;">
    <p style="color: #475569; font-size: 16px;">It's time for your daily check-in! Don't let your streak break - log your activities now.</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s/log" style="background: linear-gradient(135deg, #8b5cf6, #06b6d4); color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; display: inline-block; font-weight: bold;">📝 Log Activities Now</a>
    </div>
  </div>
  <div style="padding: 20px; text-align: center; color: #94a3b8; font-size: 12px;">
    <p>You're receiving this daily reminder because you subscribed to TrackFlow notifications.</p>
    <p><a href="%s/settings" style="color: #8b5cf6;">Manage notification preferences</a></p>
  </div>
</div>`, appURL, appURL)
	return subject, html
}

func welcomeEmailTemplate(name, appURL string) (subject, html string) {
	subject = "🎉 Welcome to TrackFlow - Let's Build Better Habits Together!"
	html = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #8b5cf6, #06b6d4); padding: 40px 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">Welcome to TrackFlow!</h1>
    <p style="color: rgba(255,255,255,0.9); margin: 10px 0 0 0;">Your journey to better habits starts now</p>
  </div>
  <div style="padding: 40px 20px;">
    <h2 style="color: #1e293b;">Hi %s! 👋</h2>
    <p style="color: #475569; font-size: 16px;">Thank you for joining TrackFlow! Create your first activity, log your progress daily and watch your streaks grow.</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s/dashboard" style="background: linear-gradient(135deg, #8b5cf6, #06b6d4); color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; display: inline-block;">Open Your Dashboard</a>
    </div>
  </div>
</div>`, name, appURL)
	return subject, html
}
